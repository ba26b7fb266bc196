package handlers

import (
	"context"

	collectionController "collectgames/internal/controllers/collection"
	reviewController "collectgames/internal/controllers/review"
	wishlistController "collectgames/internal/controllers/wishlist"
	. "collectgames/internal/models"
	"collectgames/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockCollectionController struct{ mock.Mock }

func (m *mockCollectionController) GetCollection(ctx context.Context) ([]*UserCollectionItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*UserCollectionItem)
	return items, args.Error(1)
}

func (m *mockCollectionController) GetItem(ctx context.Context, id int) (*UserCollectionItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*UserCollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionController) AddItem(
	ctx context.Context,
	request *collectionController.AddItemRequest,
) (*UserCollectionItem, error) {
	args := m.Called(ctx, request)
	item, _ := args.Get(0).(*UserCollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionController) UpdateItem(
	ctx context.Context,
	id int,
	request *collectionController.UpdateItemRequest,
) (*UserCollectionItem, error) {
	args := m.Called(ctx, id, request)
	item, _ := args.Get(0).(*UserCollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionController) DeleteItem(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCollectionController) ExportPDF(ctx context.Context) (*services.Report, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*services.Report)
	return report, args.Error(1)
}

type mockWishlistController struct{ mock.Mock }

func (m *mockWishlistController) GetWishlist(ctx context.Context) ([]*WishlistItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*WishlistItem)
	return items, args.Error(1)
}

func (m *mockWishlistController) GetItem(ctx context.Context, id int) (*WishlistItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*WishlistItem)
	return item, args.Error(1)
}

func (m *mockWishlistController) AddItem(
	ctx context.Context,
	request *wishlistController.AddWishlistItemRequest,
) (*WishlistItem, error) {
	args := m.Called(ctx, request)
	item, _ := args.Get(0).(*WishlistItem)
	return item, args.Error(1)
}

func (m *mockWishlistController) UpdateItem(
	ctx context.Context,
	id int,
	request *wishlistController.UpdateWishlistItemRequest,
) (*WishlistItem, error) {
	args := m.Called(ctx, id, request)
	item, _ := args.Get(0).(*WishlistItem)
	return item, args.Error(1)
}

func (m *mockWishlistController) DeleteItem(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockWishlistController) Purchase(
	ctx context.Context,
	id int,
	request *wishlistController.PurchaseRequest,
) (*UserCollectionItem, error) {
	args := m.Called(ctx, id, request)
	item, _ := args.Get(0).(*UserCollectionItem)
	return item, args.Error(1)
}

func (m *mockWishlistController) ExportPDF(ctx context.Context) (*services.Report, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*services.Report)
	return report, args.Error(1)
}

type mockReviewController struct{ mock.Mock }

func (m *mockReviewController) GetReviews(ctx context.Context) ([]*Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]*Review)
	return reviews, args.Error(1)
}

func (m *mockReviewController) GetReview(ctx context.Context, id int) (*Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*Review)
	return review, args.Error(1)
}

func (m *mockReviewController) GetByCollectionItem(ctx context.Context, itemID int) (*Review, error) {
	args := m.Called(ctx, itemID)
	review, _ := args.Get(0).(*Review)
	return review, args.Error(1)
}

func (m *mockReviewController) CreateReview(
	ctx context.Context,
	request *reviewController.CreateReviewRequest,
) (*Review, error) {
	args := m.Called(ctx, request)
	review, _ := args.Get(0).(*Review)
	return review, args.Error(1)
}

func (m *mockReviewController) UpdateReview(
	ctx context.Context,
	id int,
	request *reviewController.UpdateReviewRequest,
) (*Review, error) {
	args := m.Called(ctx, id, request)
	review, _ := args.Get(0).(*Review)
	return review, args.Error(1)
}

func (m *mockReviewController) DeleteReview(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockConsoleController struct{ mock.Mock }

func (m *mockConsoleController) GetConsoles(ctx context.Context) ([]*Console, error) {
	args := m.Called(ctx)
	consoles, _ := args.Get(0).([]*Console)
	return consoles, args.Error(1)
}

func (m *mockConsoleController) GetConsole(ctx context.Context, id int) (*Console, error) {
	args := m.Called(ctx, id)
	console, _ := args.Get(0).(*Console)
	return console, args.Error(1)
}

func (m *mockConsoleController) CreateConsole(ctx context.Context, console *Console) (*Console, error) {
	args := m.Called(ctx, console)
	created, _ := args.Get(0).(*Console)
	return created, args.Error(1)
}

func (m *mockConsoleController) UpdateConsole(ctx context.Context, id int, console *Console) error {
	return m.Called(ctx, id, console).Error(0)
}

func (m *mockConsoleController) DeleteConsole(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
