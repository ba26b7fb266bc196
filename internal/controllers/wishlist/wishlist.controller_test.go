package wishlistController

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainerrors "collectgames/internal/errors"
	"collectgames/internal/models"
	"collectgames/internal/repositories/repotest"
	"collectgames/internal/services"
	"collectgames/internal/services/servicetest"
	"collectgames/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.November, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store      *repotest.Store
	tx         *repotest.Transactor
	images     *servicetest.MockImageStore
	cache      *servicetest.MockCollectionCache
	reports    *servicetest.MockReportRenderer
	notifier   *servicetest.MockNotifier
	controller *WishlistController
}

func newFixture() *fixture {
	store := repotest.New()
	repos := store.Repository()
	f := &fixture{
		store:    store,
		tx:       &repotest.Transactor{},
		images:   &servicetest.MockImageStore{},
		cache:    servicetest.NewMissingCache(),
		reports:  &servicetest.MockReportRenderer{},
		notifier: servicetest.NewQuietNotifier(),
	}
	f.controller = &WishlistController{
		gameRepo:           repos.Game,
		collectionRepo:     repos.UserCollection,
		wishlistRepo:       repos.Wishlist,
		transactionService: f.tx,
		images:             f.images,
		cache:              f.cache,
		reports:            f.reports,
		notifier:           f.notifier,
		validator:          validation.New(),
		now:                func() time.Time { return fixedNow },
		log:                logger.New("wishlistController"),
	}
	return f
}

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func priorityPtr(p models.Priority) *models.Priority {
	return &p
}

func TestAddItem_DefaultsToMediumPriority(t *testing.T) {
	f := newFixture()

	item, err := f.controller.AddItem(context.Background(), &AddWishlistItemRequest{
		Title:    "Radiant Silvergun",
		Platform: "Saturn",
		ImageURL: strPtr("https://example.com/rs.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityMedium, item.Priority)
	assert.Equal(t, "https://example.com/rs.jpg", *item.ImageURL)
	assert.Equal(t, fixedNow, item.AddedDate)
	assert.Equal(t, 1, f.store.WishlistCount())
}

func TestAddItem_UploadOverridesImageURL(t *testing.T) {
	f := newFixture()
	upload := services.ImageUpload{Filename: "cover.jpg", Data: []byte{1}}
	f.images.On("Save", mock.Anything, upload).Return("/images/cover.jpg", nil).Once()

	item, err := f.controller.AddItem(context.Background(), &AddWishlistItemRequest{
		Title:    "Panzer Dragoon Saga",
		Platform: "Saturn",
		ImageURL: strPtr("https://example.com/pds.jpg"),
		Image:    &upload,
	})
	require.NoError(t, err)

	assert.Equal(t, "/images/cover.jpg", *item.ImageURL)
	f.images.AssertExpectations(t)
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request AddWishlistItemRequest
		field   string
	}{
		{"missing title", AddWishlistItemRequest{Platform: "PS1"}, "title"},
		{"missing platform", AddWishlistItemRequest{Title: "Vagrant Story"}, "platform"},
		{
			"unknown priority",
			AddWishlistItemRequest{Title: "Vagrant Story", Platform: "PS1", Priority: priorityPtr("Urgent")},
			"priority",
		},
		{
			"negative estimate",
			AddWishlistItemRequest{Title: "Vagrant Story", Platform: "PS1", EstimatedPrice: price("-5")},
			"estimatedPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.controller.AddItem(context.Background(), &tt.request)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Contains(t, domainErr.Details, tt.field)
			assert.Equal(t, 0, f.store.WishlistCount())
		})
	}
}

func TestUpdateItem_PartialPatch(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{
		Title:          "Mother 3",
		Platform:       "GBA",
		EstimatedPrice: price("60.00"),
		Priority:       models.PriorityLow,
		ImageURL:       strPtr("https://example.com/m3.png"),
		AddedDate:      fixedNow,
	})

	updated, err := f.controller.UpdateItem(context.Background(), seeded.ID, &UpdateWishlistItemRequest{
		Priority: priorityPtr(models.PriorityHigh),
		ImageURL: strPtr("https://example.com/m3-new.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, "Mother 3", updated.Title)
	assert.Equal(t, "60.00", updated.EstimatedPrice.StringFixed(2))
	assert.Equal(t, "https://example.com/m3-new.png", *updated.ImageURL)
	f.images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateItem_UploadWinsOverImageURL(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{
		Title:     "Mother 3",
		Platform:  "GBA",
		Priority:  models.PriorityLow,
		ImageURL:  strPtr("/images/previous.png"),
		AddedDate: fixedNow,
	})
	upload := services.ImageUpload{Filename: "m3.png", Data: []byte{3}}
	f.images.On("Save", mock.Anything, upload).Return("/images/m3.png", nil).Once()

	updated, err := f.controller.UpdateItem(context.Background(), seeded.ID, &UpdateWishlistItemRequest{
		ImageURL: strPtr("https://example.com/ignored.png"),
		Image:    &upload,
	})
	require.NoError(t, err)

	assert.Equal(t, "/images/m3.png", *updated.ImageURL)
	f.images.AssertNotCalled(t, "Delete", mock.Anything, "/images/previous.png")
}

func TestUpdateItem_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.controller.UpdateItem(context.Background(), 99, &UpdateWishlistItemRequest{Notes: strPtr("x")})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestDeleteItem(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{Title: "Ico", Platform: "PS2", AddedDate: fixedNow})

	require.NoError(t, f.controller.DeleteItem(context.Background(), seeded.ID))
	assert.Equal(t, 0, f.store.WishlistCount())

	err := f.controller.DeleteItem(context.Background(), seeded.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPurchase_CarriesEstimatedPrice(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{
		Title:          "Shenmue",
		Platform:       "Dreamcast",
		EstimatedPrice: price("49.99"),
		Notes:          strPtr("PAL copy"),
		ImageURL:       strPtr("https://example.com/shenmue.jpg"),
		Priority:       models.PriorityHigh,
		AddedDate:      fixedNow.Add(-48 * time.Hour),
	})

	item, err := f.controller.Purchase(context.Background(), seeded.ID, &PurchaseRequest{})
	require.NoError(t, err)

	require.NotNil(t, item.PricePaid)
	assert.Equal(t, "49.99", item.PricePaid.StringFixed(2))
	assert.Equal(t, "PAL copy", *item.Notes)
	assert.Equal(t, "https://example.com/shenmue.jpg", *item.UserImagePath)
	assert.Equal(t, models.ConditionLoose, item.Condition)
	assert.Equal(t, *models.DateOf(fixedNow), *item.PurchaseDate)
	assert.Equal(t, fixedNow, item.AddedDate)
	assert.Equal(t, "Shenmue", item.Game.Title)
	assert.Equal(t, "Dreamcast", item.Game.Platform)

	assert.Equal(t, 0, f.store.WishlistCount())
	_, err = f.controller.GetItem(context.Background(), seeded.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	f.cache.AssertCalled(t, "Invalidate", mock.Anything)
	f.notifier.AssertCalled(t, "GameAdded", mock.Anything, "Shenmue")
}

func TestPurchase_OverridesAndExistingGame(t *testing.T) {
	f := newFixture()
	existing, err := f.store.Repository().Game.FindOrCreate(context.Background(), nil, "Jet Set Radio", "Dreamcast")
	require.NoError(t, err)
	seeded := f.store.PutWishlistItem(models.WishlistItem{
		Title:          "Jet Set Radio",
		Platform:       "Dreamcast",
		EstimatedPrice: price("30.00"),
		Notes:          strPtr("wishlist note"),
		AddedDate:      fixedNow,
	})
	condition := models.ConditionCIB

	item, err := f.controller.Purchase(context.Background(), seeded.ID, &PurchaseRequest{
		Condition: &condition,
		PricePaid: price("25.50"),
		Notes:     strPtr("found at a flea market"),
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, item.GameID)
	assert.Equal(t, 1, f.store.GameCount())
	assert.Equal(t, models.ConditionCIB, item.Condition)
	assert.Equal(t, "25.50", item.PricePaid.StringFixed(2))
	assert.Equal(t, "found at a flea market", *item.Notes)
	assert.Nil(t, item.UserImagePath)
}

func TestPurchase_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.controller.Purchase(context.Background(), 7, &PurchaseRequest{})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	f.notifier.AssertNotCalled(t, "GameAdded", mock.Anything, mock.Anything)
}

func TestPurchase_ConcurrentPurchasesSucceedOnce(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{
		Title:     "Skies of Arcadia",
		Platform:  "Dreamcast",
		AddedDate: fixedNow,
	})

	// The fake transactor does not lock, so serialize the closures the way
	// the row lock does in PostgreSQL.
	var mu sync.Mutex
	f.controller.transactionService = lockingTransactor{mu: &mu, next: f.tx}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.controller.Purchase(context.Background(), seeded.ID, &PurchaseRequest{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, notFound int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, notFound)
	assert.Equal(t, 1, f.store.GameCount())
	assert.Equal(t, 1, f.store.ItemCount())
	assert.Equal(t, 0, f.store.WishlistCount())
}

func TestPurchase_InvalidCondition(t *testing.T) {
	f := newFixture()
	seeded := f.store.PutWishlistItem(models.WishlistItem{Title: "Ico", Platform: "PS2", AddedDate: fixedNow})
	condition := models.Condition("Graded")

	_, err := f.controller.Purchase(context.Background(), seeded.ID, &PurchaseRequest{Condition: &condition})
	assert.Equal(t, domainerrors.CodeValidation, domainerrors.CodeOf(err))
	assert.Equal(t, 1, f.store.WishlistCount())
	assert.Equal(t, 0, f.tx.Calls)
}

func TestSortByPriority_StableWithinPriority(t *testing.T) {
	items := []*models.WishlistItem{
		{Title: "low-newest", Priority: models.PriorityLow},
		{Title: "high-newer", Priority: models.PriorityHigh},
		{Title: "medium", Priority: models.PriorityMedium},
		{Title: "high-older", Priority: models.PriorityHigh},
		{Title: "low-oldest", Priority: models.PriorityLow},
	}

	SortByPriority(items)

	var titles []string
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"high-newer", "high-older", "medium", "low-newest", "low-oldest"}, titles)
}

func TestExportPDF_OrdersByPriority(t *testing.T) {
	f := newFixture()
	f.store.PutWishlistItem(models.WishlistItem{Title: "A", Platform: "N64", Priority: models.PriorityLow, AddedDate: fixedNow})
	f.store.PutWishlistItem(models.WishlistItem{
		Title:     "B",
		Platform:  "N64",
		Priority:  models.PriorityHigh,
		AddedDate: fixedNow.Add(-time.Hour),
	})

	var rendered []*models.WishlistItem
	f.reports.On("WishlistPDF", mock.Anything, mock.Anything, fixedNow).
		Run(func(args mock.Arguments) {
			rendered = args.Get(1).([]*models.WishlistItem)
		}).
		Return([]byte("%PDF-1.3"), nil).
		Once()

	report, err := f.controller.ExportPDF(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CollectGames_Wishlist_20241102.pdf", report.Filename)
	require.Len(t, rendered, 2)
	assert.Equal(t, "B", rendered[0].Title)
	assert.Equal(t, "A", rendered[1].Title)
}

type lockingTransactor struct {
	mu   *sync.Mutex
	next *repotest.Transactor
}

func (l lockingTransactor) Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.Execute(ctx, fn)
}
