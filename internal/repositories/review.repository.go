package repositories

import (
	"context"

	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Review, error)
	GetByCollectionItem(ctx context.Context, tx *gorm.DB, itemID int) (*Review, error)
	Create(ctx context.Context, tx *gorm.DB, review *Review) error
	Update(ctx context.Context, tx *gorm.DB, review *Review) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type reviewRepository struct {
	log logger.Logger
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{log: logger.New("reviewRepository")}
}

func (r *reviewRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Review, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	reviews, err := gorm.G[*Review](tx).
		Preload("UserCollectionItem.Game", nil).
		Order("review_date DESC, id DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get reviews", translateError(err, "failed to get reviews"))
	}

	return reviews, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Review, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	review, err := gorm.G[Review](tx).
		Preload("UserCollectionItem.Game", nil).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get review",
			translateError(err, "review not found"),
			"reviewID", id,
		)
	}

	return &review, nil
}

func (r *reviewRepository) GetByCollectionItem(
	ctx context.Context,
	tx *gorm.DB,
	itemID int,
) (*Review, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByCollectionItem")

	review, err := gorm.G[Review](tx).
		Preload("UserCollectionItem.Game", nil).
		Where("user_collection_item_id = ?", itemID).
		First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get review for collection item",
			translateError(err, "review not found"),
			"itemID", itemID,
		)
	}

	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *Review) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("UserCollectionItem").Create(review).Error; err != nil {
		return log.Err(
			"failed to create review",
			translateError(err, "a review already exists for this collection item"),
			"itemID", review.UserCollectionItemID,
		)
	}

	return nil
}

func (r *reviewRepository) Update(ctx context.Context, tx *gorm.DB, review *Review) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	result := tx.WithContext(ctx).
		Model(review).
		Select("rating", "review_text", "updated_date", "updated_at").
		Updates(review)
	if result.Error != nil {
		return log.Err(
			"failed to update review",
			translateError(result.Error, "failed to update review"),
			"reviewID", review.ID,
		)
	}

	if result.RowsAffected == 0 {
		return domainerrors.NotFoundf("review %d not found", review.ID)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	rowsAffected, err := gorm.G[Review](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to delete review",
			translateError(err, "failed to delete review"),
			"reviewID", id,
		)
	}

	if rowsAffected == 0 {
		return domainerrors.NotFoundf("review %d not found", id)
	}

	return nil
}
