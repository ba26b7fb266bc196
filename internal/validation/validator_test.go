package validation

import (
	"strings"
	"testing"

	domainerrors "collectgames/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title     string           `json:"title"     validate:"required,max=200"`
	Condition string           `json:"condition" validate:"omitempty,oneof=Loose CIB Sealed"`
	PricePaid *decimal.Decimal `json:"pricePaid" validate:"omitempty,gte=0"`
	Rating    int              `json:"rating"    validate:"gte=1,lte=5"`
	Text      string           `json:"reviewText" validate:"min=10,max=1000"`
}

func validSample() sampleRequest {
	price := decimal.RequireFromString("19.99")
	return sampleRequest{
		Title:     "Chrono Trigger",
		Condition: "CIB",
		PricePaid: &price,
		Rating:    5,
		Text:      "A timeless classic.",
	}
}

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return details
}

func TestValidator_Valid(t *testing.T) {
	assert.NoError(t, New().Validate(validSample()))
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	req := validSample()
	req.Title = ""
	req.Condition = "Mint"

	details := detailsOf(t, New().Validate(req))

	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be one of: Loose CIB Sealed", details["condition"])
}

func TestValidator_NegativePrice(t *testing.T) {
	req := validSample()
	negative := decimal.RequireFromString("-0.01")
	req.PricePaid = &negative

	details := detailsOf(t, New().Validate(req))
	assert.Contains(t, details, "pricePaid")
}

func TestValidator_ZeroAndNilPriceAccepted(t *testing.T) {
	req := validSample()
	req.PricePaid = nil
	assert.NoError(t, New().Validate(req))

	zero := decimal.Zero
	req.PricePaid = &zero
	assert.NoError(t, New().Validate(req))
}

func TestValidator_RatingBounds(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		valid  bool
	}{
		{"zero", 0, false},
		{"one", 1, true},
		{"five", 5, true},
		{"six", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSample()
			req.Rating = tt.rating
			err := New().Validate(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Contains(t, detailsOf(t, err), "rating")
			}
		})
	}
}

func TestValidator_TextLengthCountsRunes(t *testing.T) {
	req := validSample()

	req.Text = "short"
	assert.Contains(t, detailsOf(t, New().Validate(req)), "reviewText")

	req.Text = strings.Repeat("a", 10)
	assert.NoError(t, New().Validate(req))

	req.Text = strings.Repeat("é", 10)
	assert.NoError(t, New().Validate(req))

	req.Text = strings.Repeat("a", 1001)
	assert.Equal(t, "must not exceed 1000 characters", detailsOf(t, New().Validate(req))["reviewText"])
}
