package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"collectgames/internal/database"
	domainerrors "collectgames/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func newTestTransactionService(gormDB *gorm.DB, retries int) *TransactionService {
	return NewTransactionService(database.DB{SQL: gormDB}, retries).WithBaseDelay(time.Millisecond)
}

func TestTransactionService_Execute_Success(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	service := newTestTransactionService(gormDB, 3)

	called := false
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_RollbackOnError(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	service := newTestTransactionService(gormDB, 3)

	expectedError := errors.New("test error")
	calls := 0
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		calls++
		return expectedError
	})

	assert.Equal(t, expectedError, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_PanicRecovery(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	service := newTestTransactionService(gormDB, 3)

	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		panic("test panic")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic during transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_RetriesTransientErrors(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	service := newTestTransactionService(gormDB, 3)

	calls := 0
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		calls++
		if calls == 1 {
			return domainerrors.Transient("serialization failure", errors.New("40001"))
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_GivesUpAfterMaxAttempts(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	for range 3 {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	service := newTestTransactionService(gormDB, 2)

	calls := 0
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		calls++
		return domainerrors.Transient("deadlock detected", errors.New("40P01"))
	})

	assert.True(t, domainerrors.IsTransient(err))
	assert.Equal(t, 3, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_AmbiguousCommitIsNotRetried(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(driver.ErrBadConn)

	service := newTestTransactionService(gormDB, 3)

	calls := 0
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		calls++
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, domainerrors.CodeInternal, domainerrors.CodeOf(err))
	assert.False(t, domainerrors.IsTransient(err))
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_RetriesRolledBackCommit(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectBegin()
	mock.ExpectCommit()

	service := newTestTransactionService(gormDB, 3)

	calls := 0
	err := service.Execute(context.Background(), func(ctx context.Context, tx *gorm.DB) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionService_Execute_StopsOnCancelledContext(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	service := NewTransactionService(database.DB{SQL: gormDB}, 3).WithBaseDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	err := service.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		cancel()
		return domainerrors.Transient("lock not available", errors.New("55P03"))
	})

	assert.ErrorIs(t, err, context.Canceled)
}
