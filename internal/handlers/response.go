package handlers

import (
	"strconv"

	domainerrors "collectgames/internal/errors"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// respondError writes {"error", "code", "details"} with the status of the
// error's domain code. Errors without a code are reported as internal.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	var domainErr *domainerrors.Error
	if !domainerrors.As(err, &domainErr) {
		domainErr = domainerrors.Internal("internal server error", err)
	}

	status := domainErr.HTTPStatus()
	if status >= fiber.StatusInternalServerError {
		log.Er("Request failed", err, "code", domainErr.Code, "path", c.Path())
	} else {
		log.Warn("Request rejected", "code", domainErr.Code, "error", domainErr.Message, "path", c.Path())
	}

	body := fiber.Map{
		"error": domainErr.Message,
		"code":  domainErr.Code,
	}
	if domainErr.Details != nil {
		body["details"] = domainErr.Details
	}

	return c.Status(status).JSON(body)
}

func parseID(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, domainerrors.Validationf("invalid %s", name)
	}
	return id, nil
}

func invalidBody(err error) error {
	return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid request body")
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
