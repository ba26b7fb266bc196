package handlers

import (
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	domainerrors "collectgames/internal/errors"
	"collectgames/internal/services"
	"collectgames/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var formDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// formReader reads multipart and urlencoded bodies. Field names match
// case-insensitively and a field that is absent reads as nil, so partial
// updates can tell "not sent" from "sent empty".
type formReader struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(
		strings.ToLower(string(c.Request().Header.ContentType())),
		fiber.MIMEApplicationJSON,
	)
}

func newFormReader(c *fiber.Ctx) (*formReader, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, invalidBody(err)
		}
		return &formReader{values: form.Value, files: form.File}, nil
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		values, err := url.ParseQuery(string(c.Body()))
		if err != nil {
			return nil, invalidBody(err)
		}
		return &formReader{values: values}, nil
	case len(c.Body()) == 0:
		return &formReader{}, nil
	default:
		return nil, domainerrors.Validationf("unsupported content type %q", contentType)
	}
}

func (f *formReader) lookup(name string) (string, bool) {
	if values, ok := f.values[name]; ok && len(values) > 0 {
		value, _ := utils.CleanUTF8(values[0])
		return value, true
	}
	for key, values := range f.values {
		if strings.EqualFold(key, name) && len(values) > 0 {
			value, _ := utils.CleanUTF8(values[0])
			return value, true
		}
	}
	return "", false
}

func (f *formReader) String(name string) string {
	value, _ := f.lookup(name)
	return value
}

func (f *formReader) OptionalString(name string) *string {
	value, ok := f.lookup(name)
	if !ok {
		return nil
	}
	return &value
}

// OptionalNonEmpty treats a blank value like an absent one.
func (f *formReader) OptionalNonEmpty(name string) *string {
	value, ok := f.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func (f *formReader) OptionalDecimal(name string) (*decimal.Decimal, error) {
	value := f.OptionalNonEmpty(name)
	if value == nil {
		return nil, nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(*value))
	if err != nil {
		return nil, domainerrors.ValidationWithDetails(
			"validation failed",
			map[string]string{name: "must be a number"},
		)
	}
	return &amount, nil
}

func (f *formReader) OptionalTime(name string) (*time.Time, error) {
	value := f.OptionalNonEmpty(name)
	if value == nil {
		return nil, nil
	}

	for _, layout := range formDateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(*value)); err == nil {
			return &parsed, nil
		}
	}
	return nil, domainerrors.ValidationWithDetails(
		"validation failed",
		map[string]string{name: "must be a date"},
	)
}

// Image returns the uploaded file, or nil when no file was chosen.
func (f *formReader) Image(name string) (*services.ImageUpload, error) {
	var headers []*multipart.FileHeader
	for key, files := range f.files {
		if strings.EqualFold(key, name) {
			headers = files
			break
		}
	}
	if len(headers) == 0 {
		return nil, nil
	}

	header := headers[0]
	if header.Filename == "" && header.Size == 0 {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, domainerrors.Dependency("failed to read uploaded image", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domainerrors.Dependency("failed to read uploaded image", err)
	}

	return &services.ImageUpload{Filename: header.Filename, Data: data}, nil
}
