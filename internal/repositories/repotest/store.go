// Package repotest provides in-memory implementations of the repository
// interfaces for controller and job tests. The store enforces the same
// identity, uniqueness and cascade rules as the PostgreSQL schema.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	domainerrors "collectgames/internal/errors"
	"collectgames/internal/models"
	"collectgames/internal/repositories"

	"gorm.io/gorm"
)

type Store struct {
	mu sync.Mutex

	nextID   int
	games    map[int]models.Game
	consoles map[int]models.Console
	items    map[int]models.UserCollectionItem
	wishlist map[int]models.WishlistItem
	reviews  map[int]models.Review
}

func New() *Store {
	return &Store{
		games:    map[int]models.Game{},
		consoles: map[int]models.Console{},
		items:    map[int]models.UserCollectionItem{},
		wishlist: map[int]models.WishlistItem{},
		reviews:  map[int]models.Review{},
	}
}

// Repository exposes the store through the repository interfaces.
func (s *Store) Repository() repositories.Repository {
	return repositories.Repository{
		Game:           gameRepo{s},
		Console:        consoleRepo{s},
		UserCollection: collectionRepo{s},
		Wishlist:       wishlistRepo{s},
		Review:         reviewRepo{s},
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

func (s *Store) GameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

func (s *Store) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) WishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist)
}

// PutItem inserts a collection item verbatim, keeping its AddedDate.
func (s *Store) PutItem(item models.UserCollectionItem) models.UserCollectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	item.Game = nil
	s.items[item.ID] = item
	return item
}

func (s *Store) PutWishlistItem(item models.WishlistItem) models.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.wishlist[item.ID] = item
	return item
}

func (s *Store) withGame(item models.UserCollectionItem) *models.UserCollectionItem {
	if game, ok := s.games[item.GameID]; ok {
		item.Game = &game
	}
	return &item
}

type gameRepo struct{ s *Store }

func (r gameRepo) FindOrCreate(
	_ context.Context,
	_ *gorm.DB,
	title, platform string,
) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, game := range r.s.games {
		if game.Title == title && game.Platform == platform {
			return &game, nil
		}
	}

	game := models.Game{Title: title, Platform: platform}
	if err := game.BeforeCreate(nil); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid game")
	}
	game.ID = r.s.id()
	game.CreatedAt = time.Now()
	r.s.games[game.ID] = game
	return &game, nil
}

func (r gameRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	game, ok := r.s.games[id]
	if !ok {
		return nil, domainerrors.NotFound("game not found")
	}
	return &game, nil
}

type consoleRepo struct{ s *Store }

func (r consoleRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*models.Console, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	consoles := make([]*models.Console, 0, len(r.s.consoles))
	for _, console := range r.s.consoles {
		console := console
		consoles = append(consoles, &console)
	}
	sort.Slice(consoles, func(i, j int) bool { return consoles[i].Name < consoles[j].Name })
	return consoles, nil
}

func (r consoleRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*models.Console, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	console, ok := r.s.consoles[id]
	if !ok {
		return nil, domainerrors.NotFound("console not found")
	}
	return &console, nil
}

func (r consoleRepo) Create(_ context.Context, _ *gorm.DB, console *models.Console) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := console.BeforeCreate(nil); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid console")
	}
	console.ID = r.s.id()
	r.s.consoles[console.ID] = *console
	return nil
}

func (r consoleRepo) Update(_ context.Context, _ *gorm.DB, console *models.Console) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.consoles[console.ID]; !ok {
		return domainerrors.NotFoundf("console %d not found", console.ID)
	}
	r.s.consoles[console.ID] = *console
	return nil
}

func (r consoleRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.consoles[id]; !ok {
		return domainerrors.NotFoundf("console %d not found", id)
	}
	delete(r.s.consoles, id)
	for gameID, game := range r.s.games {
		if game.ConsoleID != nil && *game.ConsoleID == id {
			game.ConsoleID = nil
			r.s.games[gameID] = game
		}
	}
	return nil
}

type collectionRepo struct{ s *Store }

func (r collectionRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*models.UserCollectionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]*models.UserCollectionItem, 0, len(r.s.items))
	for _, item := range r.s.items {
		items = append(items, r.s.withGame(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedDate.Equal(items[j].AddedDate) {
			return items[i].ID > items[j].ID
		}
		return items[i].AddedDate.After(items[j].AddedDate)
	})
	return items, nil
}

func (r collectionRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*models.UserCollectionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[id]
	if !ok {
		return nil, domainerrors.NotFound("collection item not found")
	}
	return r.s.withGame(item), nil
}

func (r collectionRepo) Exists(_ context.Context, _ *gorm.DB, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.items[id]
	return ok, nil
}

func (r collectionRepo) Create(_ context.Context, _ *gorm.DB, item *models.UserCollectionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.games[item.GameID]; !ok {
		return domainerrors.Validation("referenced game does not exist")
	}
	if err := item.BeforeCreate(nil); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid collection item")
	}
	item.ID = r.s.id()
	stored := *item
	stored.Game = nil
	r.s.items[item.ID] = stored
	return nil
}

func (r collectionRepo) Update(_ context.Context, _ *gorm.DB, item *models.UserCollectionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.items[item.ID]
	if !ok {
		return domainerrors.NotFoundf("collection item %d not found", item.ID)
	}
	existing.Condition = item.Condition
	existing.PricePaid = item.PricePaid
	existing.PurchaseDate = item.PurchaseDate
	existing.UserImagePath = item.UserImagePath
	existing.Notes = item.Notes
	existing.UpdatedAt = time.Now()
	r.s.items[item.ID] = existing
	return nil
}

func (r collectionRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[id]; !ok {
		return domainerrors.NotFoundf("collection item %d not found", id)
	}
	delete(r.s.items, id)
	for reviewID, review := range r.s.reviews {
		if review.UserCollectionItemID == id {
			delete(r.s.reviews, reviewID)
		}
	}
	return nil
}

func (r collectionRepo) ImagePaths(_ context.Context, _ *gorm.DB) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var paths []string
	for _, item := range r.s.items {
		if path := item.ImagePath(); path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

type wishlistRepo struct{ s *Store }

func (r wishlistRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*models.WishlistItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]*models.WishlistItem, 0, len(r.s.wishlist))
	for _, item := range r.s.wishlist {
		item := item
		items = append(items, &item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedDate.Equal(items[j].AddedDate) {
			return items[i].ID > items[j].ID
		}
		return items[i].AddedDate.After(items[j].AddedDate)
	})
	return items, nil
}

func (r wishlistRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*models.WishlistItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.wishlist[id]
	if !ok {
		return nil, domainerrors.NotFound("wishlist item not found")
	}
	return &item, nil
}

func (r wishlistRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int) (*models.WishlistItem, error) {
	return r.GetByID(ctx, tx, id)
}

func (r wishlistRepo) Create(_ context.Context, _ *gorm.DB, item *models.WishlistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := item.BeforeCreate(nil); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid wishlist item")
	}
	item.ID = r.s.id()
	r.s.wishlist[item.ID] = *item
	return nil
}

func (r wishlistRepo) Update(_ context.Context, _ *gorm.DB, item *models.WishlistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.wishlist[item.ID]; !ok {
		return domainerrors.NotFoundf("wishlist item %d not found", item.ID)
	}
	r.s.wishlist[item.ID] = *item
	return nil
}

func (r wishlistRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.wishlist[id]; !ok {
		return domainerrors.NotFoundf("wishlist item %d not found", id)
	}
	delete(r.s.wishlist, id)
	return nil
}

func (r wishlistRepo) ImagePaths(_ context.Context, _ *gorm.DB) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var paths []string
	for _, item := range r.s.wishlist {
		if path := item.ImagePath(); path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) resolve(review models.Review) *models.Review {
	if item, ok := r.s.items[review.UserCollectionItemID]; ok {
		review.UserCollectionItem = r.s.withGame(item)
	}
	return &review
}

func (r reviewRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reviews := make([]*models.Review, 0, len(r.s.reviews))
	for _, review := range r.s.reviews {
		reviews = append(reviews, r.resolve(review))
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].ReviewDate.Equal(reviews[j].ReviewDate) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].ReviewDate.After(reviews[j].ReviewDate)
	})
	return reviews, nil
}

func (r reviewRepo) GetByID(_ context.Context, _ *gorm.DB, id int) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews[id]
	if !ok {
		return nil, domainerrors.NotFound("review not found")
	}
	return r.resolve(review), nil
}

func (r reviewRepo) GetByCollectionItem(_ context.Context, _ *gorm.DB, itemID int) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, review := range r.s.reviews {
		if review.UserCollectionItemID == itemID {
			return r.resolve(review), nil
		}
	}
	return nil, domainerrors.NotFound("review not found")
}

func (r reviewRepo) Create(_ context.Context, _ *gorm.DB, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[review.UserCollectionItemID]; !ok {
		return domainerrors.Validation("collection item does not exist")
	}
	for _, existing := range r.s.reviews {
		if existing.UserCollectionItemID == review.UserCollectionItemID {
			return domainerrors.Conflict("a review already exists for this collection item")
		}
	}
	if err := review.BeforeCreate(nil); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid review")
	}
	review.ID = r.s.id()
	stored := *review
	stored.UserCollectionItem = nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r reviewRepo) Update(_ context.Context, _ *gorm.DB, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reviews[review.ID]
	if !ok {
		return domainerrors.NotFoundf("review %d not found", review.ID)
	}
	existing.Rating = review.Rating
	existing.ReviewText = review.ReviewText
	existing.UpdatedDate = review.UpdatedDate
	r.s.reviews[review.ID] = existing
	return nil
}

func (r reviewRepo) Delete(_ context.Context, _ *gorm.DB, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return domainerrors.NotFoundf("review %d not found", id)
	}
	delete(r.s.reviews, id)
	return nil
}
