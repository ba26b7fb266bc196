package collectionController

import (
	"context"
	"strings"
	"time"

	"collectgames/internal/database"
	"collectgames/internal/events"
	. "collectgames/internal/models"
	"collectgames/internal/repositories"
	"collectgames/internal/services"
	"collectgames/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CollectionController struct {
	gameRepo           repositories.GameRepository
	collectionRepo     repositories.UserCollectionRepository
	transactionService services.Transactor
	images             services.ImageStore
	cache              services.CollectionCache
	reports            services.ReportRenderer
	notifier           events.Notifier
	validator          *validation.Validator
	db                 *gorm.DB
	now                func() time.Time
	log                logger.Logger
}

type AddItemRequest struct {
	Title        string                `json:"title"        validate:"required,max=200"`
	Platform     string                `json:"platform"     validate:"required,max=50"`
	Condition    *Condition            `json:"condition"    validate:"omitnil,oneof=Loose CIB Sealed"`
	PricePaid    *decimal.Decimal      `json:"pricePaid"    validate:"omitnil,gte=0"`
	PurchaseDate *time.Time            `json:"purchaseDate"`
	Notes        *string               `json:"notes"        validate:"omitnil,max=1000"`
	Image        *services.ImageUpload `json:"-"            validate:"-"`
}

// UpdateItemRequest is a partial patch. Nil fields keep their stored value.
type UpdateItemRequest struct {
	Condition    *Condition            `json:"condition"    validate:"omitnil,oneof=Loose CIB Sealed"`
	PricePaid    *decimal.Decimal      `json:"pricePaid"    validate:"omitnil,gte=0"`
	PurchaseDate *time.Time            `json:"purchaseDate"`
	Notes        *string               `json:"notes"        validate:"omitnil,max=1000"`
	Image        *services.ImageUpload `json:"-"            validate:"-"`
}

func (r *UpdateItemRequest) IsEmpty() bool {
	return r.Condition == nil &&
		r.PricePaid == nil &&
		r.PurchaseDate == nil &&
		r.Notes == nil &&
		r.Image == nil
}

type CollectionControllerInterface interface {
	GetCollection(ctx context.Context) ([]*UserCollectionItem, error)
	GetItem(ctx context.Context, id int) (*UserCollectionItem, error)
	AddItem(ctx context.Context, request *AddItemRequest) (*UserCollectionItem, error)
	UpdateItem(ctx context.Context, id int, request *UpdateItemRequest) (*UserCollectionItem, error)
	DeleteItem(ctx context.Context, id int) error
	ExportPDF(ctx context.Context) (*services.Report, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	notifier events.Notifier,
	validator *validation.Validator,
	db database.DB,
) CollectionControllerInterface {
	return &CollectionController{
		gameRepo:           repos.Game,
		collectionRepo:     repos.UserCollection,
		transactionService: services.Transaction,
		images:             services.Images,
		cache:              services.CollectionCache,
		reports:            services.Reports,
		notifier:           notifier,
		validator:          validator,
		db:                 db.SQL,
		now:                time.Now,
		log:                logger.New("collectionController"),
	}
}

func (c *CollectionController) GetCollection(ctx context.Context) ([]*UserCollectionItem, error) {
	log := c.log.TraceFromContext(ctx).Function("GetCollection")

	items, found, err := c.cache.Get(ctx)
	switch {
	case err != nil:
		log.Warn("collection cache read failed, loading from store", "error", err)
	case found:
		log.Debug("Collection served from cache", "count", len(items))
		return nonNil(items), nil
	}

	items, err = c.collectionRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to get collection", err)
	}

	// May overwrite a concurrent write's Invalidate with this older listing;
	// CollectionCacheExpiry bounds the staleness.
	if err := c.cache.Set(ctx, items); err != nil {
		log.Warn("failed to cache collection", "error", err)
	}

	return nonNil(items), nil
}

func (c *CollectionController) GetItem(ctx context.Context, id int) (*UserCollectionItem, error) {
	log := c.log.TraceFromContext(ctx).Function("GetItem")

	item, err := c.collectionRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get collection item", err, "itemID", id)
	}

	return item, nil
}

func (c *CollectionController) AddItem(
	ctx context.Context,
	request *AddItemRequest,
) (*UserCollectionItem, error) {
	log := c.log.TraceFromContext(ctx).Function("AddItem")

	request.Title = strings.TrimSpace(request.Title)
	request.Platform = strings.TrimSpace(request.Platform)
	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid collection item", err)
	}

	var imagePath *string
	if request.Image != nil {
		path, err := c.images.Save(ctx, *request.Image)
		if err != nil {
			return nil, log.Err("failed to store image", err, "filename", request.Image.Filename)
		}
		imagePath = &path
	}

	now := c.now()
	purchaseDate := now
	if request.PurchaseDate != nil {
		purchaseDate = *request.PurchaseDate
	}
	condition := ConditionLoose
	if request.Condition != nil {
		condition = *request.Condition
	}

	var item *UserCollectionItem
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		game, err := c.gameRepo.FindOrCreate(ctx, tx, request.Title, request.Platform)
		if err != nil {
			return err
		}

		created := &UserCollectionItem{
			GameID:        game.ID,
			Condition:     condition,
			PricePaid:     request.PricePaid,
			PurchaseDate:  DateOf(purchaseDate),
			UserImagePath: imagePath,
			Notes:         request.Notes,
			AddedDate:     now.UTC(),
		}
		if err := c.collectionRepo.Create(ctx, tx, created); err != nil {
			return err
		}

		created.Game = game
		item = created
		return nil
	})
	if err != nil {
		if imagePath != nil {
			c.discardImage(ctx, *imagePath)
		}
		return nil, log.Err(
			"failed to add collection item",
			err,
			"title", request.Title,
			"platform", request.Platform,
		)
	}

	c.invalidateCache(ctx)
	c.notifier.GameAdded(ctx, item.Game.Title)

	log.Info("Collection item added", "itemID", item.ID, "gameID", item.GameID)

	return item, nil
}

func (c *CollectionController) UpdateItem(
	ctx context.Context,
	id int,
	request *UpdateItemRequest,
) (*UserCollectionItem, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateItem")

	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid collection item update", err, "itemID", id)
	}

	item, err := c.collectionRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get collection item", err, "itemID", id)
	}

	if request.IsEmpty() {
		log.Debug("Empty patch, nothing to update", "itemID", id)
		return item, nil
	}

	previousImage := item.ImagePath()
	var newImage string
	if request.Image != nil {
		newImage, err = c.images.Save(ctx, *request.Image)
		if err != nil {
			return nil, log.Err("failed to store image", err, "itemID", id)
		}
		item.UserImagePath = &newImage
	}

	if request.Condition != nil {
		item.Condition = *request.Condition
	}
	if request.PricePaid != nil {
		item.PricePaid = request.PricePaid
	}
	if request.PurchaseDate != nil {
		item.PurchaseDate = DateOf(*request.PurchaseDate)
	}
	if request.Notes != nil {
		item.Notes = emptyToNil(request.Notes)
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.collectionRepo.Update(ctx, tx, item)
	})
	if err != nil {
		if newImage != "" {
			c.discardImage(ctx, newImage)
		}
		return nil, log.Err("failed to update collection item", err, "itemID", id)
	}

	if newImage != "" && previousImage != "" && previousImage != newImage {
		c.discardImage(ctx, previousImage)
	}

	c.invalidateCache(ctx)
	c.notifier.CollectionUpdated(ctx)

	log.Info("Collection item updated", "itemID", id)

	return item, nil
}

func (c *CollectionController) DeleteItem(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteItem")

	item, err := c.collectionRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return log.Err("failed to get collection item", err, "itemID", id)
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.collectionRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return log.Err("failed to delete collection item", err, "itemID", id)
	}

	if path := item.ImagePath(); path != "" {
		c.discardImage(ctx, path)
	}

	c.invalidateCache(ctx)

	title := ""
	if item.Game != nil {
		title = item.Game.Title
	}
	c.notifier.GameRemoved(ctx, title)

	log.Info("Collection item deleted", "itemID", id)

	return nil
}

func (c *CollectionController) ExportPDF(ctx context.Context) (*services.Report, error) {
	log := c.log.TraceFromContext(ctx).Function("ExportPDF")

	items, err := c.collectionRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to load collection for export", err)
	}

	now := c.now()
	data, err := c.reports.CollectionPDF(ctx, items, now)
	if err != nil {
		return nil, log.Err("failed to render collection report", err, "count", len(items))
	}

	return &services.Report{
		Filename: services.ReportFilename("Collection", now),
		Data:     data,
	}, nil
}

func (c *CollectionController) invalidateCache(ctx context.Context) {
	if err := c.cache.Invalidate(ctx); err != nil {
		c.log.TraceFromContext(ctx).
			Function("invalidateCache").
			Warn("failed to invalidate collection cache", "error", err)
	}
}

func (c *CollectionController) discardImage(ctx context.Context, path string) {
	if err := c.images.Delete(ctx, path); err != nil {
		c.log.TraceFromContext(ctx).
			Function("discardImage").
			Warn("failed to delete image", "path", path, "error", err)
	}
}

func nonNil(items []*UserCollectionItem) []*UserCollectionItem {
	if items == nil {
		return []*UserCollectionItem{}
	}
	return items
}

// emptyToNil turns a blank patch value into a cleared column.
func emptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
