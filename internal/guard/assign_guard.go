package guard

import (
	"context"
	"errors"
)

// AssignGuard serializes accept requests per task. Two rapid accepts on
// the same task must not both reach the assignment transaction.
type AssignGuard interface {
	Acquire(ctx context.Context, taskID string) error

	Release(ctx context.Context, taskID string) error
}

var ErrGuardHeld = errors.New("assignment already in progress for this task")
