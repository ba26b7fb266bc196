package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Condition string

const (
	ConditionLoose  Condition = "Loose"
	ConditionCIB    Condition = "CIB"
	ConditionSealed Condition = "Sealed"
)

const (
	MaxNotesLength     = 1000
	MaxImagePathLength = 500
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionLoose, ConditionCIB, ConditionSealed:
		return true
	}
	return false
}

type UserCollectionItem struct {
	BaseModel
	GameID        int              `gorm:"type:int;not null;index"         json:"gameId"`
	Game          *Game            `gorm:"foreignKey:GameID;constraint:OnDelete:RESTRICT" json:"game,omitempty"`
	Condition     Condition        `gorm:"type:varchar(20);not null;default:'Loose'" json:"condition"`
	PricePaid     *decimal.Decimal `gorm:"type:decimal(18,2)"              json:"pricePaid"`
	PurchaseDate  *datatypes.Date  `gorm:"type:date"                       json:"purchaseDate"`
	UserImagePath *string          `gorm:"type:varchar(500)"               json:"userImagePath"`
	Notes         *string          `gorm:"type:varchar(1000)"              json:"notes"`
	AddedDate     time.Time        `gorm:"not null;index"                  json:"addedDate"`
}

func (i *UserCollectionItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.GameID == 0 {
		return gorm.ErrInvalidValue
	}
	if i.Condition == "" {
		i.Condition = ConditionLoose
	}
	if i.AddedDate.IsZero() {
		i.AddedDate = time.Now().UTC()
	}
	return nil
}

// ImagePath returns the stored image path or "" when none is set.
func (i *UserCollectionItem) ImagePath() string {
	if i.UserImagePath == nil {
		return ""
	}
	return *i.UserImagePath
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) *datatypes.Date {
	date := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &date
}
