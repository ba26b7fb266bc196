package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"collectgames/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func strPtr(value string) *string {
	return &value
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := range 4 {
		for y := range 4 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestReportService_CollectionPDF(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "cover.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0o644))

	service := NewReportService(NewImageStorageService(dir))

	items := []*models.UserCollectionItem{
		{
			Game:          &models.Game{Title: "Sonic the Hedgehog", Platform: "Mega Drive"},
			Condition:     models.ConditionCIB,
			PricePaid:     price("29.99"),
			UserImagePath: strPtr("/images/cover.png"),
		},
		{
			Game:          &models.Game{Title: strings.Repeat("Very Long Title ", 20), Platform: "SNES"},
			Condition:     models.ConditionLoose,
			UserImagePath: strPtr("/images/broken.jpg"),
		},
		{
			Game:          &models.Game{Title: "Pokémon Red", Platform: "Game Boy"},
			Condition:     models.ConditionSealed,
			UserImagePath: strPtr("https://example.com/remote.jpg"),
		},
	}

	data, err := service.CollectionPDF(context.Background(), items, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReportService_WishlistPDFManyPages(t *testing.T) {
	service := NewReportService(nil)

	items := make([]*models.WishlistItem, 0, 40)
	for range 40 {
		items = append(items, &models.WishlistItem{
			Title:          "EarthBound",
			Platform:       "SNES",
			Priority:       models.PriorityHigh,
			EstimatedPrice: price("120.00"),
		})
	}

	data, err := service.WishlistPDF(context.Background(), items, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReportService_EmptyList(t *testing.T) {
	data, err := NewReportService(nil).CollectionPDF(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "€49.99", FormatEuro(decimal.RequireFromString("49.99")))
	assert.Equal(t, "€0.00", FormatEuro(decimal.Zero))
	assert.Equal(t, "€10.50", FormatEuro(decimal.RequireFromString("10.5")))
}

func TestReportFilename(t *testing.T) {
	day := time.Date(2024, time.March, 7, 23, 10, 0, 0, time.Local)
	assert.Equal(t, "CollectGames_Collection_20240307.pdf", ReportFilename("Collection", day))
	assert.Equal(t, "CollectGames_Wishlist_20240307.pdf", ReportFilename("Wishlist", day))
}
