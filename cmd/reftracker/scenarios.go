package main

import (
	"context"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/reftracker"
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/reftracker/workload"
	"github.com/iotaledger/hive.go/runtime/options"
)

// ErrScenarioFailed is returned if a scenario observes a reference that was not handled as expected.
var ErrScenarioFailed = ierrors.New("scenario failed")

// Scenario is a named check that exercises the trackers.
type Scenario struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes the scenarios with the configured tracker settings.
type Runner struct {
	config   *AppConfig
	lockKind lockpolicy.Kind

	*logger.WrappedLogger
}

// NewRunner creates a new Runner.
func NewRunner(config *AppConfig, log *logger.Logger) (*Runner, error) {
	lockKind, err := config.LockPolicyKind()
	if err != nil {
		return nil, err
	}

	return &Runner{
		config:        config,
		lockKind:      lockKind,
		WrappedLogger: logger.NewWrappedLogger(log.Named("Runner")),
	}, nil
}

// Scenarios returns the scenarios in the order of their execution.
func (r *Runner) Scenarios() []Scenario {
	scenarios := []Scenario{
		{Name: "DestroyClearsAliases", Run: r.destroyClearsAliases},
		{Name: "UnregisteredAliasIsKept", Run: r.unregisteredAliasIsKept},
	}

	if r.config.Workload.Enabled {
		scenarios = append(scenarios, Scenario{Name: "ConcurrentWorkload", Run: r.concurrentWorkload})
	}

	return scenarios
}

// Run executes all scenarios and stops at the first failure.
func (r *Runner) Run(ctx context.Context) error {
	for _, scenario := range r.Scenarios() {
		if err := scenario.Run(ctx); err != nil {
			r.LogErrorw("scenario failed", "scenario", scenario.Name, "err", err)

			return ierrors.Wrapf(err, "scenario '%s'", scenario.Name)
		}

		r.LogInfow("scenario passed", "scenario", scenario.Name)
	}

	return nil
}

func (r *Runner) trackerOptions() []options.Option[reftracker.ReferenceTracker[reftracker.TrackedObject]] {
	return []options.Option[reftracker.ReferenceTracker[reftracker.TrackedObject]]{
		reftracker.WithDeduplication[reftracker.TrackedObject](r.config.Tracker.Deduplicate),
		reftracker.WithLockPolicy[reftracker.TrackedObject](r.lockKind),
	}
}

func (r *Runner) newObject(name string) *reftracker.TrackedObject {
	return reftracker.NewTrackedObject(
		reftracker.WithObjectName(name),
		reftracker.WithObjectLogger(r.Logger()),
		reftracker.WithTrackerOptions(r.trackerOptions()...),
	)
}

func (r *Runner) destroyClearsAliases(_ context.Context) error {
	obj := r.newObject("aliased")

	ref1, ref2 := obj, obj
	obj.AddReference(&ref1)
	obj.AddReference(&ref2)

	obj.Destroy()

	if ref1 != nil || ref2 != nil {
		return ierrors.Wrap(ErrScenarioFailed, "references still point to the destroyed object")
	}

	return nil
}

func (r *Runner) unregisteredAliasIsKept(_ context.Context) error {
	obj := r.newObject("unregistered")

	ref1 := obj
	obj.AddReference(&ref1)
	obj.RemoveReference(&ref1)

	obj.Destroy()

	if ref1 != obj {
		return ierrors.Wrap(ErrScenarioFailed, "an unregistered reference was modified")
	}

	return nil
}

func (r *Runner) concurrentWorkload(ctx context.Context) error {
	cfg := r.config.Workload.Config
	if cfg.Workers > 1 && !r.lockKind.IsSynchronized() {
		r.LogWarnw("lock policy is not synchronized, running the workload with a single worker", "lockPolicy", r.lockKind)
		cfg.Workers = 1
	}

	obj := r.newObject("workload")
	report, err := workload.Run(ctx, obj.Tracker(), obj, cfg)
	if err != nil {
		return err
	}
	obj.Destroy()

	r.LogInfow("workload finished",
		"workers", cfg.Workers,
		"adds", report.Adds,
		"removes", report.Removes,
		"registered", report.Registered,
		"invalidated", report.Invalidated,
		"duration", report.Duration,
	)

	return nil
}
