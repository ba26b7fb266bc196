package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	MaxGameTitleLength    = 200
	MaxGamePlatformLength = 50
)

// Game is identified by its exact (title, platform) pair.
type Game struct {
	BaseModel
	Title           string   `gorm:"type:varchar(200);not null;uniqueIndex:idx_games_title_platform" json:"title"`
	Platform        string   `gorm:"type:varchar(50);not null;uniqueIndex:idx_games_title_platform"  json:"platform"`
	NormalizedTitle string   `gorm:"type:varchar(200);not null;index"                                json:"normalizedTitle"`
	WikipediaSlug   *string  `gorm:"type:varchar(200)"                                               json:"wikipediaSlug,omitempty"`
	ReleaseYear     *int     `gorm:"type:int"                                                        json:"releaseYear,omitempty"`
	ConsoleID       *int     `gorm:"type:int;index"                                                  json:"consoleId,omitempty"`
	Console         *Console `gorm:"foreignKey:ConsoleID"                                            json:"console,omitempty"`
}

func NormalizeTitle(title string) string {
	return strings.ToUpper(title)
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.Title == "" || g.Platform == "" {
		return gorm.ErrInvalidValue
	}
	g.NormalizedTitle = NormalizeTitle(g.Title)
	return nil
}
