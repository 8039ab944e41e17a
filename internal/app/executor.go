package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotedash/internal/platform/logging"
)

// Every mutation runs in five steps: Validate → Perform → Verify → Archive → Respond.
//
//  1. VALIDATE  local checks; a failure here sends nothing to the remote API
//  2. PERFORM   the single gateway call
//  3. VERIFY    the response is usable (ids present, counts sane)
//  4. ARCHIVE   apply the result to the Store
//  5. RESPOND   hand a copy back to the caller
//
// The Store is only touched in ARCHIVE, so a failure in any earlier step
// leaves cached state exactly as it was.

// ExecutionStep names one of the five steps.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step a mutation failed in. It unwraps to the
// cause so domain error checks still work.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor runs Operations with step logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger uses slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the step functions of one mutation. Nil steps are skipped.
type Operation[I, P, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) error
	Archive  func(ctx context.Context, input I, performed P) error
	Respond  func(ctx context.Context, input I, performed P) (O, error)
}

func (e *Executor) step(ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func() error) error {
	logger.Log(ctx, logging.LevelTrace, "step started", slog.String("step", string(step)))

	if err := fn(); err != nil {
		level := slog.LevelWarn
		if step == StepVerify || step == StepArchive {
			level = slog.LevelError
		}

		logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))

		return &ExecutionError{Step: step, Cause: err}
	}

	return nil
}

// Execute runs op for input.
func Execute[I, P, O any](ctx context.Context, exec *Executor, op Operation[I, P, O], input I) (O, error) {
	var (
		zero      O
		performed P
		result    O
	)

	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		if err := exec.step(ctx, logger, StepValidate, func() error { return op.Validate(ctx, input) }); err != nil {
			return zero, err
		}
	}

	if op.Perform != nil {
		err := exec.step(ctx, logger, StepPerform, func() error {
			var err error
			performed, err = op.Perform(ctx, input)

			return err
		})
		if err != nil {
			return zero, err
		}
	}

	// A caller that gave up must not see its result land in the Store.
	if err := ctx.Err(); err != nil {
		return zero, &ExecutionError{Step: StepPerform, Cause: err}
	}

	if op.Verify != nil {
		if err := exec.step(ctx, logger, StepVerify, func() error { return op.Verify(ctx, input, performed) }); err != nil {
			return zero, err
		}
	}

	if op.Archive != nil {
		if err := exec.step(ctx, logger, StepArchive, func() error { return op.Archive(ctx, input, performed) }); err != nil {
			return zero, err
		}
	}

	if op.Respond != nil {
		err := exec.step(ctx, logger, StepRespond, func() error {
			var err error
			result, err = op.Respond(ctx, input, performed)

			return err
		})
		if err != nil {
			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// FailedStep extracts the step from an execution error.
func FailedStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
