package repositories

import (
	"context"

	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository interface {
	// FindOrCreate returns the game identified by (title, platform), creating
	// it when absent. Concurrent callers converge on a single row.
	FindOrCreate(ctx context.Context, tx *gorm.DB, title, platform string) (*Game, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Game, error)
}

type gameRepository struct {
	log logger.Logger
}

func NewGameRepository() GameRepository {
	return &gameRepository{log: logger.New("gameRepository")}
}

func (r *gameRepository) FindOrCreate(
	ctx context.Context,
	tx *gorm.DB,
	title, platform string,
) (*Game, error) {
	log := r.log.TraceFromContext(ctx).Function("FindOrCreate")

	game := Game{Title: title, Platform: platform}
	err := gorm.G[Game](tx, clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}, {Name: "platform"}},
		DoNothing: true,
	}).Create(ctx, &game)
	if err != nil {
		return nil, log.Err(
			"failed to insert game",
			translateError(err, "failed to insert game"),
			"title", title,
			"platform", platform,
		)
	}

	if game.ID != 0 {
		log.Debug("Created game", "gameID", game.ID, "title", title, "platform", platform)
		return &game, nil
	}

	existing, err := gorm.G[Game](tx).
		Where("title = ? AND platform = ?", title, platform).
		First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to load existing game",
			translateError(err, "game not found"),
			"title", title,
			"platform", platform,
		)
	}

	return &existing, nil
}

func (r *gameRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Game, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	game, err := gorm.G[Game](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err("failed to get game", translateError(err, "game not found"), "gameID", id)
	}

	return &game, nil
}
