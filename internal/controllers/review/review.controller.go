package reviewController

import (
	"context"
	"time"

	"collectgames/internal/database"
	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"
	"collectgames/internal/repositories"
	"collectgames/internal/services"
	"collectgames/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ReviewController struct {
	reviewRepo         repositories.ReviewRepository
	collectionRepo     repositories.UserCollectionRepository
	transactionService services.Transactor
	validator          *validation.Validator
	db                 *gorm.DB
	now                func() time.Time
	log                logger.Logger
}

// Text limits count characters, not bytes.
type CreateReviewRequest struct {
	UserCollectionItemID int    `json:"userCollectionItemId" validate:"required,gt=0"`
	Rating               int    `json:"rating"               validate:"gte=1,lte=5"`
	ReviewText           string `json:"reviewText"           validate:"min=10,max=1000"`
}

type UpdateReviewRequest struct {
	Rating     *int    `json:"rating"     validate:"omitnil,gte=1,lte=5"`
	ReviewText *string `json:"reviewText" validate:"omitnil,min=10,max=1000"`
}

type ReviewControllerInterface interface {
	GetReviews(ctx context.Context) ([]*Review, error)
	GetReview(ctx context.Context, id int) (*Review, error)
	GetByCollectionItem(ctx context.Context, itemID int) (*Review, error)
	CreateReview(ctx context.Context, request *CreateReviewRequest) (*Review, error)
	UpdateReview(ctx context.Context, id int, request *UpdateReviewRequest) (*Review, error)
	DeleteReview(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	validator *validation.Validator,
	db database.DB,
) ReviewControllerInterface {
	return &ReviewController{
		reviewRepo:         repos.Review,
		collectionRepo:     repos.UserCollection,
		transactionService: services.Transaction,
		validator:          validator,
		db:                 db.SQL,
		now:                time.Now,
		log:                logger.New("reviewController"),
	}
}

func (c *ReviewController) GetReviews(ctx context.Context) ([]*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("GetReviews")

	reviews, err := c.reviewRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to get reviews", err)
	}
	if reviews == nil {
		reviews = []*Review{}
	}

	return reviews, nil
}

func (c *ReviewController) GetReview(ctx context.Context, id int) (*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("GetReview")

	review, err := c.reviewRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get review", err, "reviewID", id)
	}

	return review, nil
}

func (c *ReviewController) GetByCollectionItem(ctx context.Context, itemID int) (*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("GetByCollectionItem")

	review, err := c.reviewRepo.GetByCollectionItem(ctx, c.db, itemID)
	if err != nil {
		return nil, log.Err("failed to get review for collection item", err, "itemID", itemID)
	}

	return review, nil
}

func (c *ReviewController) CreateReview(
	ctx context.Context,
	request *CreateReviewRequest,
) (*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateReview")

	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid review", err)
	}

	review := &Review{
		UserCollectionItemID: request.UserCollectionItemID,
		Rating:               request.Rating,
		ReviewText:           request.ReviewText,
		ReviewDate:           c.now().UTC(),
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := c.collectionRepo.Exists(ctx, tx, request.UserCollectionItemID)
		if err != nil {
			return err
		}
		if !exists {
			return domainerrors.Validationf(
				"collection item %d does not exist",
				request.UserCollectionItemID,
			)
		}

		_, err = c.reviewRepo.GetByCollectionItem(ctx, tx, request.UserCollectionItemID)
		switch {
		case err == nil:
			return domainerrors.Conflict("a review already exists for this collection item")
		case !domainerrors.Is(err, domainerrors.ErrNotFound):
			return err
		}

		review.ID = 0
		return c.reviewRepo.Create(ctx, tx, review)
	})
	if err != nil {
		return nil, log.Err(
			"failed to create review",
			err,
			"itemID", request.UserCollectionItemID,
		)
	}

	log.Info("Review created", "reviewID", review.ID, "itemID", review.UserCollectionItemID)

	return review, nil
}

func (c *ReviewController) UpdateReview(
	ctx context.Context,
	id int,
	request *UpdateReviewRequest,
) (*Review, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateReview")

	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid review update", err, "reviewID", id)
	}

	review, err := c.reviewRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get review", err, "reviewID", id)
	}

	changed := false
	if request.Rating != nil && *request.Rating != review.Rating {
		review.Rating = *request.Rating
		changed = true
	}
	if request.ReviewText != nil && *request.ReviewText != review.ReviewText {
		review.ReviewText = *request.ReviewText
		changed = true
	}
	if !changed {
		return review, nil
	}

	updatedDate := c.now().UTC()
	review.UpdatedDate = &updatedDate

	if err := c.reviewRepo.Update(ctx, c.db, review); err != nil {
		return nil, log.Err("failed to update review", err, "reviewID", id)
	}

	log.Info("Review updated", "reviewID", id)

	return review, nil
}

func (c *ReviewController) DeleteReview(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteReview")

	if err := c.reviewRepo.Delete(ctx, c.db, id); err != nil {
		return log.Err("failed to delete review", err, "reviewID", id)
	}

	log.Info("Review deleted", "reviewID", id)

	return nil
}
