package seed

import (
	"time"

	"collectgames/config"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func stringPtr(s string) *string {
	return &s
}

func pricePtr(s string) *decimal.Decimal {
	price := decimal.RequireFromString(s)
	return &price
}

type seedItem struct {
	title     string
	platform  string
	condition Condition
	price     string
	notes     *string
	rating    int
	review    string
}

// Seed loads a small development collection: owned games with a few reviews
// and a wishlist.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	if config.Environment == "production" {
		return log.ErrMsg("refusing to seed a production database")
	}

	now := time.Now().UTC()

	items := []seedItem{
		{title: "Chrono Trigger", platform: "SNES", condition: ConditionCIB, price: "149.99", rating: 5, review: "Still the best time travel story in games."},
		{title: "Super Metroid", platform: "SNES", condition: ConditionLoose, price: "64.50", rating: 5, review: "Atmosphere and pacing that holds up perfectly."},
		{title: "Sonic the Hedgehog 2", platform: "Genesis", condition: ConditionCIB, price: "25.00"},
		{title: "Metal Gear Solid", platform: "PlayStation", condition: ConditionCIB, price: "39.99", notes: stringPtr("Black label, both discs")},
		{title: "The Legend of Zelda: Ocarina of Time", platform: "Nintendo 64", condition: ConditionLoose, price: "35.00", rating: 4, review: "Camera aged a bit but the dungeons are superb."},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			game := Game{Title: item.title, Platform: item.platform}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&game).Error; err != nil {
				return log.Err("failed to create game", err, "title", item.title)
			}
			if err := tx.Where("title = ? AND platform = ?", item.title, item.platform).First(&game).Error; err != nil {
				return log.Err("failed to load game", err, "title", item.title)
			}

			collectionItem := UserCollectionItem{
				GameID:       game.ID,
				Condition:    item.condition,
				PricePaid:    pricePtr(item.price),
				PurchaseDate: DateOf(now.AddDate(0, -i-1, 0)),
				Notes:        item.notes,
				AddedDate:    now.Add(-time.Duration(len(items)-i) * time.Hour),
			}
			if err := tx.Create(&collectionItem).Error; err != nil {
				return log.Err("failed to create collection item", err, "title", item.title)
			}

			if item.rating == 0 {
				continue
			}

			review := Review{
				UserCollectionItemID: collectionItem.ID,
				Rating:               item.rating,
				ReviewText:           item.review,
				ReviewDate:           collectionItem.AddedDate,
			}
			if err := tx.Create(&review).Error; err != nil {
				return log.Err("failed to create review", err, "title", item.title)
			}
		}

		wishlist := []WishlistItem{
			{Title: "EarthBound", Platform: "SNES", EstimatedPrice: pricePtr("220.00"), Priority: PriorityHigh, AddedDate: now},
			{Title: "Panzer Dragoon Saga", Platform: "Saturn", EstimatedPrice: pricePtr("600.00"), Priority: PriorityMedium, Notes: stringPtr("Complete copy only"), AddedDate: now},
			{Title: "Shenmue", Platform: "Dreamcast", PurchaseLink: stringPtr("https://www.pricecharting.com/game/sega-dreamcast/shenmue"), Priority: PriorityLow, AddedDate: now},
		}
		if err := tx.Create(&wishlist).Error; err != nil {
			return log.Err("failed to create wishlist items", err)
		}

		log.Info("Seed complete", "collectionItems", len(items), "wishlistItems", len(wishlist))
		return nil
	})
}
