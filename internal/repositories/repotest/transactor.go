package repotest

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs the function directly with a nil transaction handle. Err,
// when set, is returned without calling the function.
type Transactor struct {
	Err   error
	Calls int
}

func (t *Transactor) Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}
