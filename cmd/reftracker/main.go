// Command reftracker runs the reference invalidation scenarios with configurable tracker settings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/reftracker/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "reftracker: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	container, err := newContainer(args)
	if err != nil {
		return err
	}

	return container.Invoke(func(runner *Runner, log *logger.Logger) error {
		defer func() { _ = log.Sync() }()

		return runner.Run(ctx)
	})
}

// newContainer provides the components of the application.
func newContainer(args []string) (*dig.Container, error) {
	container := dig.New()

	for _, constructor := range []interface{}{
		func() (*AppConfig, error) { return loadConfig(args) },
		func(config *AppConfig) (*logger.Logger, error) { return logger.NewRootLogger(config.Logger) },
		NewRunner,
	} {
		if err := container.Provide(constructor); err != nil {
			return nil, err
		}
	}

	return container, nil
}
