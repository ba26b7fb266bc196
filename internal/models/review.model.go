package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinRating           = 1
	MaxRating           = 5
	MinReviewTextLength = 10
	MaxReviewTextLength = 1000
)

// Review belongs to exactly one collection item and is removed with it.
type Review struct {
	BaseModel
	UserCollectionItemID int                 `gorm:"type:int;not null;uniqueIndex:idx_reviews_user_collection_item" json:"userCollectionItemId"`
	UserCollectionItem   *UserCollectionItem `gorm:"foreignKey:UserCollectionItemID;constraint:OnDelete:CASCADE"    json:"userCollectionItem,omitempty"`
	Rating               int                 `gorm:"type:int;not null"                                              json:"rating"`
	ReviewText           string              `gorm:"type:varchar(1000);not null"                                    json:"reviewText"`
	ReviewDate           time.Time           `gorm:"not null"                                                       json:"reviewDate"`
	UpdatedDate          *time.Time          `                                                                      json:"updatedDate"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.UserCollectionItemID == 0 {
		return gorm.ErrInvalidValue
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return gorm.ErrInvalidValue
	}
	if r.ReviewDate.IsZero() {
		r.ReviewDate = time.Now().UTC()
	}
	return nil
}
