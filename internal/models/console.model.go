package models

import "gorm.io/gorm"

type ConsoleType string

const (
	ConsoleTypeHome     ConsoleType = "Home"
	ConsoleTypeHandheld ConsoleType = "Handheld"
	ConsoleTypeHybrid   ConsoleType = "Hybrid"
)

func (t ConsoleType) Valid() bool {
	switch t {
	case ConsoleTypeHome, ConsoleTypeHandheld, ConsoleTypeHybrid:
		return true
	}
	return false
}

type Console struct {
	BaseModel
	Name         string      `gorm:"type:varchar(100);not null"        json:"name"         validate:"required,max=100"`
	Manufacturer string      `gorm:"type:varchar(100);not null"        json:"manufacturer" validate:"max=100"`
	Type         ConsoleType `gorm:"type:varchar(20);default:'Home'"   json:"type"         validate:"omitempty,oneof=Home Handheld Hybrid"`
	ImageName    *string     `gorm:"type:varchar(200)"                 json:"imageName"`
	ReleaseYear  *int        `gorm:"type:int"                          json:"releaseYear"`
	// Owns the games.console_id foreign key.
	Games []Game `gorm:"foreignKey:ConsoleID;constraint:OnDelete:SET NULL" json:"games,omitempty" validate:"-"`
}

func (c *Console) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Name == "" {
		return gorm.ErrInvalidValue
	}
	if c.Type == "" {
		c.Type = ConsoleTypeHome
	}
	return nil
}

func (c *Console) BeforeUpdate(tx *gorm.DB) (err error) {
	if c.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
