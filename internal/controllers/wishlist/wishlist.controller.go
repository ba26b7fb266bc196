package wishlistController

import (
	"context"
	"sort"
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

type WishlistController struct {
	gameRepo           repositories.GameRepository
	collectionRepo     repositories.UserCollectionRepository
	wishlistRepo       repositories.WishlistRepository
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

type AddWishlistItemRequest struct {
	Title          string                `json:"title"          validate:"required,max=200"`
	Platform       string                `json:"platform"       validate:"required,max=50"`
	ImageURL       *string               `json:"imageUrl"       validate:"omitnil,max=500"`
	PurchaseLink   *string               `json:"purchaseLink"   validate:"omitnil,max=500"`
	EstimatedPrice *decimal.Decimal      `json:"estimatedPrice" validate:"omitnil,gte=0"`
	Notes          *string               `json:"notes"          validate:"omitnil,max=1000"`
	Priority       *Priority             `json:"priority"       validate:"omitnil,oneof=Low Medium High"`
	Image          *services.ImageUpload `json:"-"              validate:"-"`
}

type UpdateWishlistItemRequest struct {
	Title          *string               `json:"title"          validate:"omitnil,min=1,max=200"`
	Platform       *string               `json:"platform"       validate:"omitnil,min=1,max=50"`
	ImageURL       *string               `json:"imageUrl"       validate:"omitnil,max=500"`
	PurchaseLink   *string               `json:"purchaseLink"   validate:"omitnil,max=500"`
	EstimatedPrice *decimal.Decimal      `json:"estimatedPrice" validate:"omitnil,gte=0"`
	Notes          *string               `json:"notes"          validate:"omitnil,max=1000"`
	Priority       *Priority             `json:"priority"       validate:"omitnil,oneof=Low Medium High"`
	Image          *services.ImageUpload `json:"-"              validate:"-"`
}

func (r *UpdateWishlistItemRequest) IsEmpty() bool {
	return r.Title == nil &&
		r.Platform == nil &&
		r.ImageURL == nil &&
		r.PurchaseLink == nil &&
		r.EstimatedPrice == nil &&
		r.Notes == nil &&
		r.Priority == nil &&
		r.Image == nil
}

// PurchaseRequest overrides the values carried over from the wishlist entry.
type PurchaseRequest struct {
	Condition    *Condition       `json:"condition"    validate:"omitnil,oneof=Loose CIB Sealed"`
	PricePaid    *decimal.Decimal `json:"pricePaid"    validate:"omitnil,gte=0"`
	PurchaseDate *time.Time       `json:"purchaseDate"`
	Notes        *string          `json:"notes"        validate:"omitnil,max=1000"`
}

type WishlistControllerInterface interface {
	GetWishlist(ctx context.Context) ([]*WishlistItem, error)
	GetItem(ctx context.Context, id int) (*WishlistItem, error)
	AddItem(ctx context.Context, request *AddWishlistItemRequest) (*WishlistItem, error)
	UpdateItem(ctx context.Context, id int, request *UpdateWishlistItemRequest) (*WishlistItem, error)
	DeleteItem(ctx context.Context, id int) error
	Purchase(ctx context.Context, id int, request *PurchaseRequest) (*UserCollectionItem, error)
	ExportPDF(ctx context.Context) (*services.Report, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	notifier events.Notifier,
	validator *validation.Validator,
	db database.DB,
) WishlistControllerInterface {
	return &WishlistController{
		gameRepo:           repos.Game,
		collectionRepo:     repos.UserCollection,
		wishlistRepo:       repos.Wishlist,
		transactionService: services.Transaction,
		images:             services.Images,
		cache:              services.CollectionCache,
		reports:            services.Reports,
		notifier:           notifier,
		validator:          validator,
		db:                 db.SQL,
		now:                time.Now,
		log:                logger.New("wishlistController"),
	}
}

func (c *WishlistController) GetWishlist(ctx context.Context) ([]*WishlistItem, error) {
	log := c.log.TraceFromContext(ctx).Function("GetWishlist")

	items, err := c.wishlistRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to get wishlist", err)
	}
	if items == nil {
		items = []*WishlistItem{}
	}

	return items, nil
}

func (c *WishlistController) GetItem(ctx context.Context, id int) (*WishlistItem, error) {
	log := c.log.TraceFromContext(ctx).Function("GetItem")

	item, err := c.wishlistRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get wishlist item", err, "itemID", id)
	}

	return item, nil
}

func (c *WishlistController) AddItem(
	ctx context.Context,
	request *AddWishlistItemRequest,
) (*WishlistItem, error) {
	log := c.log.TraceFromContext(ctx).Function("AddItem")

	request.Title = strings.TrimSpace(request.Title)
	request.Platform = strings.TrimSpace(request.Platform)
	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid wishlist item", err)
	}

	item := &WishlistItem{
		Title:          request.Title,
		Platform:       request.Platform,
		ImageURL:       request.ImageURL,
		PurchaseLink:   request.PurchaseLink,
		EstimatedPrice: request.EstimatedPrice,
		Notes:          request.Notes,
		Priority:       PriorityMedium,
		AddedDate:      c.now().UTC(),
	}
	if request.Priority != nil {
		item.Priority = *request.Priority
	}

	var storedImage string
	if request.Image != nil {
		path, err := c.images.Save(ctx, *request.Image)
		if err != nil {
			return nil, log.Err("failed to store image", err, "filename", request.Image.Filename)
		}
		storedImage = path
		item.ImageURL = &storedImage
	}

	if err := c.wishlistRepo.Create(ctx, c.db, item); err != nil {
		if storedImage != "" {
			c.discardImage(ctx, storedImage)
		}
		return nil, log.Err("failed to add wishlist item", err, "title", item.Title)
	}

	log.Info("Wishlist item added", "itemID", item.ID, "priority", item.Priority)

	return item, nil
}

func (c *WishlistController) UpdateItem(
	ctx context.Context,
	id int,
	request *UpdateWishlistItemRequest,
) (*WishlistItem, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateItem")

	if request.Title != nil {
		trimmed := strings.TrimSpace(*request.Title)
		request.Title = &trimmed
	}
	if request.Platform != nil {
		trimmed := strings.TrimSpace(*request.Platform)
		request.Platform = &trimmed
	}
	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid wishlist item update", err, "itemID", id)
	}

	item, err := c.wishlistRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get wishlist item", err, "itemID", id)
	}

	if request.IsEmpty() {
		return item, nil
	}

	if request.Title != nil {
		item.Title = *request.Title
	}
	if request.Platform != nil {
		item.Platform = *request.Platform
	}
	if request.PurchaseLink != nil {
		item.PurchaseLink = request.PurchaseLink
	}
	if request.EstimatedPrice != nil {
		item.EstimatedPrice = request.EstimatedPrice
	}
	if request.Notes != nil {
		item.Notes = request.Notes
	}
	if request.Priority != nil {
		item.Priority = *request.Priority
	}

	var storedImage string
	switch {
	case request.Image != nil:
		storedImage, err = c.images.Save(ctx, *request.Image)
		if err != nil {
			return nil, log.Err("failed to store image", err, "itemID", id)
		}
		item.ImageURL = &storedImage
	case request.ImageURL != nil:
		item.ImageURL = request.ImageURL
	}

	if err := c.wishlistRepo.Update(ctx, c.db, item); err != nil {
		if storedImage != "" {
			c.discardImage(ctx, storedImage)
		}
		return nil, log.Err("failed to update wishlist item", err, "itemID", id)
	}

	log.Info("Wishlist item updated", "itemID", id)

	return item, nil
}

func (c *WishlistController) DeleteItem(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteItem")

	if err := c.wishlistRepo.Delete(ctx, c.db, id); err != nil {
		return log.Err("failed to delete wishlist item", err, "itemID", id)
	}

	log.Info("Wishlist item deleted", "itemID", id)

	return nil
}

// Purchase moves a wishlist entry into the collection. The lock on the
// wishlist row makes concurrent purchases of the same entry serialize: the
// loser finds the row gone and gets NotFound.
func (c *WishlistController) Purchase(
	ctx context.Context,
	id int,
	request *PurchaseRequest,
) (*UserCollectionItem, error) {
	log := c.log.TraceFromContext(ctx).Function("Purchase")

	if err := c.validator.Validate(request); err != nil {
		return nil, log.Err("invalid purchase request", err, "wishlistID", id)
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
		wish, err := c.wishlistRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		game, err := c.gameRepo.FindOrCreate(ctx, tx, wish.Title, wish.Platform)
		if err != nil {
			return err
		}

		created := &UserCollectionItem{
			GameID:        game.ID,
			Condition:     condition,
			PricePaid:     wish.EstimatedPrice,
			PurchaseDate:  DateOf(purchaseDate),
			UserImagePath: wish.ImageURL,
			Notes:         wish.Notes,
			AddedDate:     now.UTC(),
		}
		if request.PricePaid != nil {
			created.PricePaid = request.PricePaid
		}
		if request.Notes != nil {
			created.Notes = request.Notes
		}

		if err := c.collectionRepo.Create(ctx, tx, created); err != nil {
			return err
		}
		if err := c.wishlistRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		created.Game = game
		item = created
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to purchase wishlist item", err, "wishlistID", id)
	}

	if err := c.cache.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate collection cache", "error", err)
	}
	c.notifier.GameAdded(ctx, item.Game.Title)

	log.Info("Wishlist item purchased", "wishlistID", id, "itemID", item.ID, "gameID", item.GameID)

	return item, nil
}

func (c *WishlistController) ExportPDF(ctx context.Context) (*services.Report, error) {
	log := c.log.TraceFromContext(ctx).Function("ExportPDF")

	items, err := c.wishlistRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to load wishlist for export", err)
	}

	SortByPriority(items)

	now := c.now()
	data, err := c.reports.WishlistPDF(ctx, items, now)
	if err != nil {
		return nil, log.Err("failed to render wishlist report", err, "count", len(items))
	}

	return &services.Report{
		Filename: services.ReportFilename("Wishlist", now),
		Data:     data,
	}, nil
}

// SortByPriority orders High before Medium before Low, keeping the incoming
// order within a priority.
func SortByPriority(items []*WishlistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() > items[j].Priority.Rank()
	})
}

func (c *WishlistController) discardImage(ctx context.Context, path string) {
	if err := c.images.Delete(ctx, path); err != nil {
		c.log.TraceFromContext(ctx).
			Function("discardImage").
			Warn("failed to delete image", "path", path, "error", err)
	}
}
