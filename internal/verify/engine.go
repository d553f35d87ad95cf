package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vietdv277/asgcheck/internal/ui"
	"github.com/vietdv277/asgcheck/pkg/provider"
)

// ErrEmptyGroupName is returned when Verify is called without a group name
var ErrEmptyGroupName = errors.New("auto scaling group name is required")

// Outcome classifies how a verification run ended
type Outcome int

const (
	// OutcomeCompleted means every check and report was printed, whether
	// or not the checks passed
	OutcomeCompleted Outcome = iota
	// OutcomeNotFound means the group does not exist and nothing was checked
	OutcomeNotFound
	// OutcomeFault means a query or mapping error stopped the run
	OutcomeFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeFault:
		return "fault"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Engine verifies one Auto Scaling Group per call
type Engine struct {
	provider provider.FleetProvider
	printer  *ui.Printer
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option allows customizing the Engine
type Option func(*Engine)

// WithLogger sets the logger errors and debug details are written to
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithClock overrides the source of the current time
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine that queries p and prints results to out
func New(p provider.FleetProvider, out io.Writer, opts ...Option) *Engine {
	e := &Engine{
		provider: p,
		printer:  ui.NewPrinter(out),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}

	return e
}

// Run verifies the named group and logs any failure. It is the single error
// boundary of a run: lines printed before a fault stay printed.
func (e *Engine) Run(ctx context.Context, name string) Outcome {
	log := e.log.WithFields(logrus.Fields{
		"group":  name,
		"run_id": uuid.NewString(),
	})

	err := e.verify(ctx, name, log)
	switch {
	case err == nil:
		log.Debug("Verification completed")
		return OutcomeCompleted
	case errors.Is(err, provider.ErrGroupNotFound):
		log.Errorf("No Auto Scaling Group found with the name %s", name)
		return OutcomeNotFound
	default:
		entry := log.WithError(err)
		var mfe *provider.MissingFieldError
		if errors.As(err, &mfe) {
			entry = entry.WithFields(logrus.Fields{
				"resource":    mfe.Resource,
				"resource_id": mfe.ID,
				"field":       mfe.Field,
			})
		}
		entry.Error("An error occurred during verification")
		return OutcomeFault
	}
}

// Verify runs every check against the named group. A missing group yields
// an error wrapping provider.ErrGroupNotFound before anything is printed.
func (e *Engine) Verify(ctx context.Context, name string) error {
	return e.verify(ctx, name, e.log)
}

func (e *Engine) verify(ctx context.Context, name string, log logrus.FieldLogger) error {
	if name == "" {
		return ErrEmptyGroupName
	}

	snapshot, err := e.provider.DescribeGroup(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to describe group %q: %w", name, err)
	}
	log.WithFields(logrus.Fields{
		"desired_capacity":  snapshot.DesiredCapacity,
		"instances":         len(snapshot.Instances),
		"scheduled_actions": len(snapshot.ScheduledActions),
	}).Debug("Fetched group snapshot")

	for _, r := range Checks(snapshot) {
		log.WithFields(logrus.Fields{"check": r.Name, "passed": r.Passed}).Debug("Check evaluated")
		e.printer.Check(r.Passed, r.Message)
	}

	now := e.now().UTC()

	if inst, ok := LongestUptime(snapshot.Instances); ok {
		e.printer.LongestUptime(inst, now)
	} else {
		e.printer.Line("Longest uptime instance: none (group has no instances)")
	}

	if action, ok := NextScheduledAction(snapshot.ScheduledActions); ok {
		e.printer.NextScheduledAction(action, now)
	} else {
		e.printer.Line("No scheduled actions")
	}

	log.Debug("Counting launches and terminations across the whole region, not only this group")
	entries, err := e.provider.DescribeAllInstanceStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe instance statuses: %w", err)
	}

	counts := CountToday(entries, now)
	e.printer.Line("Launched instances today: %d", counts.Launched)
	e.printer.Line("Terminated instances today: %d", counts.Terminated)

	return nil
}
