package main

import (
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/reftracker/configuration"
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/reftracker/workload"
)

const (
	// EnvPrefix is the prefix of the environment variables that override settings.
	EnvPrefix = "REFTRACKER"

	CfgConfigFile         = "config"
	CfgTrackerDeduplicate = "tracker.deduplicate"
	CfgTrackerLockPolicy  = "tracker.lockPolicy"
	CfgWorkloadEnabled    = "workload.enabled"
	CfgWorkloadWorkers    = "workload.workers"
	CfgWorkloadOperations = "workload.operations"
	CfgWorkloadSlots      = "workload.slots"
	CfgWorkloadSeed       = "workload.seed"
)

// TrackerConfig holds the settings of the trackers that are created by the scenarios.
type TrackerConfig struct {
	Deduplicate bool   `json:"deduplicate" koanf:"deduplicate"`
	LockPolicy  string `json:"lockPolicy" koanf:"lockpolicy"`
}

// WorkloadConfig holds the settings of the concurrent workload.
type WorkloadConfig struct {
	Enabled bool `json:"enabled" koanf:"enabled"`

	workload.Config `koanf:",squash"`
}

// AppConfig holds all settings of the application.
type AppConfig struct {
	Tracker  TrackerConfig  `json:"tracker" koanf:"tracker"`
	Workload WorkloadConfig `json:"workload" koanf:"workload"`
	Logger   logger.Config  `json:"logger" koanf:"logger"`
}

// LockPolicyKind resolves the configured lock policy.
func (c *AppConfig) LockPolicyKind() (lockpolicy.Kind, error) {
	return lockpolicy.ParseKind(c.Tracker.LockPolicy)
}

func defaultSettings() map[string]interface{} {
	loggerDefaults := logger.DefaultConfig()
	workloadDefaults := workload.DefaultConfig()

	return map[string]interface{}{
		CfgTrackerDeduplicate:                    false,
		CfgTrackerLockPolicy:                     lockpolicy.Mutex.String(),
		CfgWorkloadEnabled:                       true,
		CfgWorkloadWorkers:                       workloadDefaults.Workers,
		CfgWorkloadOperations:                    workloadDefaults.Operations,
		CfgWorkloadSlots:                         workloadDefaults.Slots,
		CfgWorkloadSeed:                          workloadDefaults.Seed,
		logger.ConfigurationKeyLevel:             loggerDefaults.Level,
		logger.ConfigurationKeyDisableCaller:     loggerDefaults.DisableCaller,
		logger.ConfigurationKeyDisableStacktrace: loggerDefaults.DisableStacktrace,
		logger.ConfigurationKeyEncoding:          loggerDefaults.Encoding,
		logger.ConfigurationKeyOutputPaths:       loggerDefaults.OutputPaths,
	}
}

func newFlagSet() *flag.FlagSet {
	flagSet := configuration.NewUnsortedFlagSet("reftracker", flag.ContinueOnError)

	loggerDefaults := logger.DefaultConfig()
	workloadDefaults := workload.DefaultConfig()

	flagSet.StringP(CfgConfigFile, "c", "", "path to a JSON or YAML config file")
	flagSet.Bool(CfgTrackerDeduplicate, false, "store every registered location at most once")
	flagSet.String(CfgTrackerLockPolicy, lockpolicy.Mutex.String(), "lock policy of the trackers (none, mutex, deadlock)")
	flagSet.Bool(CfgWorkloadEnabled, true, "run the concurrent workload")
	flagSet.Int(CfgWorkloadWorkers, workloadDefaults.Workers, "number of concurrent workers")
	flagSet.Int(CfgWorkloadOperations, workloadDefaults.Operations, "operations per worker")
	flagSet.Int(CfgWorkloadSlots, workloadDefaults.Slots, "number of pointer variables")
	flagSet.Int64(CfgWorkloadSeed, workloadDefaults.Seed, "seed of the generated operations")
	flagSet.String(logger.ConfigurationKeyLevel, loggerDefaults.Level, "minimum log level")
	flagSet.String(logger.ConfigurationKeyEncoding, loggerDefaults.Encoding, "log encoding (console, json)")
	flagSet.StringSlice(logger.ConfigurationKeyOutputPaths, loggerDefaults.OutputPaths, "log outputs")

	return flagSet
}

// loadConfig parses the command line and merges defaults, config file, environment and flags (in that order).
func loadConfig(args []string) (*AppConfig, error) {
	flagSet := newFlagSet()
	if err := flagSet.Parse(args); err != nil {
		return nil, ierrors.Wrap(err, "unable to parse command line")
	}

	config := configuration.New()
	if err := config.LoadDefaults(defaultSettings()); err != nil {
		return nil, ierrors.Wrap(err, "unable to load defaults")
	}

	if configFile, _ := flagSet.GetString(CfgConfigFile); configFile != "" {
		if err := config.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	if err := config.LoadEnvironmentVars(EnvPrefix); err != nil {
		return nil, ierrors.Wrap(err, "unable to load environment variables")
	}

	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, ierrors.Wrap(err, "unable to load command line flags")
	}

	appConfig := new(AppConfig)
	if err := config.Unmarshal("", appConfig); err != nil {
		return nil, err
	}

	if _, err := appConfig.LockPolicyKind(); err != nil {
		return nil, err
	}
	appConfig.Tracker.LockPolicy = strings.ToLower(appConfig.Tracker.LockPolicy)

	return appConfig, nil
}
