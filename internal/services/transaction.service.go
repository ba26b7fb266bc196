package services

import (
	"context"
	"fmt"
	"time"

	"collectgames/internal/database"
	domainerrors "collectgames/internal/errors"
	"collectgames/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const defaultRetryBaseDelay = 50 * time.Millisecond

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error
}

// TransactionService handles database transactions. A function failing with
// a transient store error is re-run in a fresh transaction, so fn must not
// perform side effects outside tx. A failed commit is only retried when the
// server reports the transaction as rolled back; any other commit failure
// leaves the outcome unknown and is returned as internal.
type TransactionService struct {
	db          database.DB
	log         logger.Logger
	maxAttempts int
	baseDelay   time.Duration
}

func NewTransactionService(db database.DB, retries int) *TransactionService {
	if retries < 0 {
		retries = 0
	}

	return &TransactionService{
		db:          db,
		log:         logger.New("TransactionService"),
		maxAttempts: retries + 1,
		baseDelay:   defaultRetryBaseDelay,
	}
}

// WithBaseDelay overrides the first backoff interval.
func (ts *TransactionService) WithBaseDelay(delay time.Duration) *TransactionService {
	ts.baseDelay = delay
	return ts
}

func (ts *TransactionService) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) error {
	log := ts.log.TraceFromContext(ctx).Function("Execute")

	var err error
	for attempt := 1; attempt <= ts.maxAttempts; attempt++ {
		err = ts.execute(ctx, log, fn)
		if err == nil || !domainerrors.IsTransient(err) || attempt == ts.maxAttempts {
			return err
		}

		delay := ts.baseDelay << (attempt - 1)
		log.Warn(
			"transient transaction failure, retrying",
			"attempt", attempt,
			"maxAttempts", ts.maxAttempts,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return err
}

func (ts *TransactionService) execute(
	ctx context.Context,
	log logger.Logger,
	fn func(context.Context, *gorm.DB) error,
) (err error) {
	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err(
			"failed to begin transaction",
			domainerrors.Transient("failed to begin transaction", tx.Error),
		)
	}

	defer func() {
		if r := recover(); r != nil {
			panicErr := log.ErrMsg("panic during transaction: " + fmt.Sprintf("%v", r))

			if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
				log.Er("CRITICAL: failed to rollback after panic", rollbackErr, "panic", r)
				panic(
					fmt.Sprintf(
						"transaction rollback failed: %v (original panic: %v)",
						rollbackErr,
						r,
					),
				)
			}

			log.Info("transaction rolled back successfully after panic")
			err = panicErr
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			log.Er("failed to rollback after function error", rollbackErr, "originalError", err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if repositories.IsRollbackGuaranteed(err) {
			return log.Err(
				"failed to commit transaction",
				domainerrors.Transient("failed to commit transaction", err),
			)
		}
		return log.Err(
			"failed to commit transaction",
			domainerrors.Internal("failed to commit transaction", err),
		)
	}

	return nil
}
