package repositories

import (
	"context"
	"errors"
	"strings"

	"collectgames/internal/database"
	domainerrors "collectgames/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	Game           GameRepository
	Console        ConsoleRepository
	UserCollection UserCollectionRepository
	Wishlist       WishlistRepository
	Review         ReviewRepository
}

func New(db database.DB) Repository {
	return Repository{
		Game:           NewGameRepository(),
		Console:        NewConsoleRepository(),
		UserCollection: NewUserCollectionRepository(),
		Wishlist:       NewWishlistRepository(),
		Review:         NewReviewRepository(),
	}
}

// PostgreSQL SQLSTATE codes the store layer classifies.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgConnectionClass      = "08"
)

// IsRollbackGuaranteed reports whether PostgreSQL rolled the transaction
// back when it raised err. Only these failures are safe to retry after a
// commit attempt.
func IsRollbackGuaranteed(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

// translateError maps store failures onto the domain taxonomy. Errors that
// already carry a domain code pass through untouched.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.NotFound(msg)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return domainerrors.Wrap(err, domainerrors.CodeConflict, msg)
		case pgErr.Code == pgForeignKeyViolation:
			return domainerrors.Wrap(err, domainerrors.CodeValidation, msg)
		case pgErr.Code == pgSerializationFailure,
			pgErr.Code == pgDeadlockDetected,
			pgErr.Code == pgLockNotAvailable,
			strings.HasPrefix(pgErr.Code, pgConnectionClass):
			return domainerrors.Transient(msg, err)
		}
	}

	if errors.Is(err, gorm.ErrInvalidValue) {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, msg)
	}

	return domainerrors.Internal(msg, err)
}
