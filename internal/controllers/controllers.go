package controllers

import (
	"collectgames/internal/database"
	"collectgames/internal/events"
	"collectgames/internal/repositories"
	"collectgames/internal/services"
	"collectgames/internal/validation"

	collectionController "collectgames/internal/controllers/collection"
	consoleController "collectgames/internal/controllers/console"
	reviewController "collectgames/internal/controllers/review"
	wishlistController "collectgames/internal/controllers/wishlist"
)

type Controllers struct {
	Collection collectionController.CollectionControllerInterface
	Wishlist   wishlistController.WishlistControllerInterface
	Review     reviewController.ReviewControllerInterface
	Console    consoleController.ConsoleControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	notifier events.Notifier,
	db database.DB,
) Controllers {
	validator := validation.New()

	return Controllers{
		Collection: collectionController.New(repos, services, notifier, validator, db),
		Wishlist:   wishlistController.New(repos, services, notifier, validator, db),
		Review:     reviewController.New(repos, services, validator, db),
		Console:    consoleController.New(repos, validator, db),
	}
}
