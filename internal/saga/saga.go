package saga

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Step is one unit of a saga. Compensate undoes a step that already succeeded and may be nil.
type Step struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order and, when one fails, compensates the completed ones in reverse.
type Saga struct {
	name   string
	steps  []Step
	logger *zap.Logger
}

// New creates an empty saga.
func New(name string, logger *zap.Logger) *Saga {
	return &Saga{name: name, logger: logger}
}

// AddStep appends a step.
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs the saga. The returned error wraps the failing step's error; compensation
// failures are logged and joined onto it.
func (s *Saga) Execute(ctx context.Context) error {
	log := s.logger.With(zap.String("saga", s.name))
	log.Debug("saga started")

	for i, step := range s.steps {
		err := step.Execute(ctx)
		if err == nil {
			log.Debug("saga step done", zap.String("step", step.Name))
			continue
		}

		log.Warn("saga step failed, compensating", zap.String("step", step.Name), zap.Error(err))
		failure := fmt.Errorf("saga %s: step %s: %w", s.name, step.Name, err)

		for j := i - 1; j >= 0; j-- {
			done := s.steps[j]
			if done.Compensate == nil {
				continue
			}
			// Compensation must run even when the caller's context is already cancelled.
			if compErr := done.Compensate(context.WithoutCancel(ctx)); compErr != nil {
				log.Error("compensation failed", zap.String("step", done.Name), zap.Error(compErr))
				failure = errors.Join(failure, fmt.Errorf("compensate %s: %w", done.Name, compErr))
			}
		}
		return failure
	}

	log.Debug("saga completed")
	return nil
}
