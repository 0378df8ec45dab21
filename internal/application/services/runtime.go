package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

// Runtime carries what every service shares: the simulated latency, the
// clock, validation, logging and the operation recorder.
type Runtime struct {
	latency  config.LatencyConfig
	logger   *logger.Logger
	recorder ports.OperationRecorder
	validate *validator.Validate
	now      func() time.Time
	sleep    func(time.Duration)
}

// RuntimeOption configures a Runtime
type RuntimeOption func(*Runtime)

// WithRecorder reports every service call to rec.
func WithRecorder(rec ports.OperationRecorder) RuntimeOption {
	return func(rt *Runtime) {
		if rec != nil {
			rt.recorder = rec
		}
	}
}

// WithClock replaces time.Now for stamps taken by the services.
func WithClock(now func() time.Time) RuntimeOption {
	return func(rt *Runtime) {
		if now != nil {
			rt.now = now
		}
	}
}

// WithSleep replaces the function used to simulate latency.
func WithSleep(sleep func(time.Duration)) RuntimeOption {
	return func(rt *Runtime) {
		if sleep != nil {
			rt.sleep = sleep
		}
	}
}

// NewRuntime creates the shared service runtime
func NewRuntime(latency config.LatencyConfig, log *logger.Logger, opts ...RuntimeOption) *Runtime {
	if log == nil {
		log = logger.NewNop()
	}
	rt := &Runtime{
		latency:  latency,
		logger:   log,
		recorder: nopRecorder{},
		validate: newValidator(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Now returns the runtime clock's current time.
func (rt *Runtime) Now() time.Time { return rt.now() }

type nopRecorder struct{}

func (nopRecorder) Observe(string, string, time.Duration, error) {}

// wait simulates the round trip. It ignores cancellation: a mutation that
// has been issued always commits.
func (rt *Runtime) wait(d time.Duration) {
	if !rt.latency.Enabled || d <= 0 {
		return
	}
	rt.sleep(d)
}

func observe[T any](rt *Runtime, entity, operation string, delay time.Duration, fn func() (T, error)) (T, error) {
	start := time.Now()
	rt.wait(delay)
	v, err := fn()
	elapsed := time.Since(start)

	rt.recorder.Observe(entity, operation, elapsed, err)
	rt.logger.LogServiceCall(entity, operation, elapsed, err)
	return v, err
}

func (rt *Runtime) exec(entity, operation string, delay time.Duration, fn func() error) error {
	_, err := observe(rt, entity, operation, delay, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// due dates come either from the calendar (2006-01-02) or as RFC 3339
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, ok := entities.ParseDueDate(fl.Field().String())
		return ok
	})

	return v
}

// check validates req and translates the first failure into an
// InvalidArgumentError.
func (rt *Runtime) check(req interface{}) error {
	err := rt.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &entities.InvalidArgumentError{
			Field:  fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: describeTag(fe),
		}
	}
	return &entities.InvalidArgumentError{Field: "request", Reason: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be an email address"
	case "hexcolor":
		return "must be a hex colour"
	case "duedate":
		return "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func invalidEnum(field, value string, allowed ...string) error {
	return &entities.InvalidArgumentError{
		Field:  field,
		Value:  value,
		Reason: "must be one of " + strings.Join(allowed, ", "),
	}
}

func checkStatus(ts entities.TaskStatus) error {
	if !ts.IsValid() {
		return invalidEnum("status", string(ts), "todo", "in-progress", "done")
	}
	return nil
}

func checkPriority(p entities.Priority) error {
	if !p.IsValid() {
		return invalidEnum("priority", string(p), "low", "medium", "high")
	}
	return nil
}

func checkPermission(p entities.Permission) error {
	if !p.IsValid() {
		return invalidEnum("permission", string(p), "view", "edit")
	}
	return nil
}

func checkNotificationType(nt entities.NotificationType) error {
	if !nt.IsValid() {
		return invalidEnum("type", string(nt), "mention", "due_date", "assignment", "other")
	}
	return nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &entities.InvalidArgumentError{Field: field, Reason: "must not be blank"}
	}
	return nil
}
