package repositories

import (
	"context"

	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ConsoleRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Console, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Console, error)
	Create(ctx context.Context, tx *gorm.DB, console *Console) error
	Update(ctx context.Context, tx *gorm.DB, console *Console) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type consoleRepository struct {
	log logger.Logger
}

func NewConsoleRepository() ConsoleRepository {
	return &consoleRepository{log: logger.New("consoleRepository")}
}

func (r *consoleRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Console, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	consoles, err := gorm.G[*Console](tx).Order("name ASC").Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get consoles", translateError(err, "failed to get consoles"))
	}

	return consoles, nil
}

func (r *consoleRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Console, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	console, err := gorm.G[Console](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get console",
			translateError(err, "console not found"),
			"consoleID", id,
		)
	}

	return &console, nil
}

func (r *consoleRepository) Create(ctx context.Context, tx *gorm.DB, console *Console) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := gorm.G[Console](tx).Create(ctx, console); err != nil {
		return log.Err(
			"failed to create console",
			translateError(err, "failed to create console"),
			"name", console.Name,
		)
	}

	return nil
}

// Update replaces every editable column of the console with the given id.
func (r *consoleRepository) Update(ctx context.Context, tx *gorm.DB, console *Console) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	result := tx.WithContext(ctx).
		Model(console).
		Select("name", "manufacturer", "type", "image_name", "release_year", "updated_at").
		Updates(console)
	if result.Error != nil {
		return log.Err(
			"failed to update console",
			translateError(result.Error, "failed to update console"),
			"consoleID", console.ID,
		)
	}

	if result.RowsAffected == 0 {
		return domainerrors.NotFoundf("console %d not found", console.ID)
	}

	return nil
}

func (r *consoleRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	rowsAffected, err := gorm.G[Console](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to delete console",
			translateError(err, "failed to delete console"),
			"consoleID", id,
		)
	}

	if rowsAffected == 0 {
		return domainerrors.NotFoundf("console %d not found", id)
	}

	return nil
}
