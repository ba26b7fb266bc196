package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities High > Medium > Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

type WishlistItem struct {
	BaseModel
	Title          string           `gorm:"type:varchar(200);not null"           json:"title"`
	Platform       string           `gorm:"type:varchar(50);not null"            json:"platform"`
	ImageURL       *string          `gorm:"column:image_url;type:varchar(500)"   json:"imageUrl"`
	PurchaseLink   *string          `gorm:"type:varchar(500)"                    json:"purchaseLink"`
	EstimatedPrice *decimal.Decimal `gorm:"type:decimal(18,2)"                   json:"estimatedPrice"`
	Notes          *string          `gorm:"type:varchar(1000)"                   json:"notes"`
	Priority       Priority         `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	AddedDate      time.Time        `gorm:"not null;index"                       json:"addedDate"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if w.Title == "" || w.Platform == "" {
		return gorm.ErrInvalidValue
	}
	if w.Priority == "" {
		w.Priority = PriorityMedium
	}
	if w.AddedDate.IsZero() {
		w.AddedDate = time.Now().UTC()
	}
	return nil
}

func (w *WishlistItem) ImagePath() string {
	if w.ImageURL == nil {
		return ""
	}
	return *w.ImageURL
}
