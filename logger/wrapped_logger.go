package logger

// WrappedLogger is a wrapper to call logging functions in case a logger was passed.
type WrappedLogger struct {
	logger *Logger
}

// NewWrappedLogger creates a new WrappedLogger.
func NewWrappedLogger(logger *Logger) *WrappedLogger {
	return &WrappedLogger{logger: logger}
}

// Logger return the underlying logger.
func (l *WrappedLogger) Logger() *Logger {
	if l == nil {
		return nil
	}

	return l.logger
}

// LoggerNamed adds a sub-scope to the logger's name.
func (l *WrappedLogger) LoggerNamed(name string) *Logger {
	if l == nil || l.logger == nil {
		return nil
	}

	return l.logger.Named(name)
}

// LogDebugw logs a message with some additional context at debug level.
func (l *WrappedLogger) LogDebugw(msg string, keysAndValues ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Debugw(msg, keysAndValues...)
	}
}

// LogDebugf uses fmt.Sprintf to log a templated message.
func (l *WrappedLogger) LogDebugf(template string, args ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Debugf(template, args...)
	}
}

// LogInfow logs a message with some additional context at info level.
func (l *WrappedLogger) LogInfow(msg string, keysAndValues ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Infow(msg, keysAndValues...)
	}
}

// LogInfof uses fmt.Sprintf to log a templated message.
func (l *WrappedLogger) LogInfof(template string, args ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Infof(template, args...)
	}
}

// LogWarnw logs a message with some additional context at warn level.
func (l *WrappedLogger) LogWarnw(msg string, keysAndValues ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Warnw(msg, keysAndValues...)
	}
}

// LogErrorw logs a message with some additional context at error level.
func (l *WrappedLogger) LogErrorw(msg string, keysAndValues ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Errorw(msg, keysAndValues...)
	}
}

// LogErrorf uses fmt.Sprintf to log a templated message.
func (l *WrappedLogger) LogErrorf(template string, args ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Errorf(template, args...)
	}
}
