package handlers

import (
	"fmt"

	"collectgames/internal/app"
	consoleController "collectgames/internal/controllers/console"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ConsoleHandler struct {
	Handler
	consoleController consoleController.ConsoleControllerInterface
}

func NewConsoleHandler(app app.App, router fiber.Router) *ConsoleHandler {
	log := logger.New("handlers").File("console_handler")
	return &ConsoleHandler{
		consoleController: app.Controllers.Console,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ConsoleHandler) Register() {
	consoles := h.router.Group("/consoles")

	consoles.Get("", h.getConsoles)
	consoles.Get("/:id", h.getConsole)
	consoles.Post("", h.createConsole)
	consoles.Put("/:id", h.updateConsole)
	consoles.Delete("/:id", h.deleteConsole)
}

func (h *ConsoleHandler) getConsoles(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("console_handler").Function("getConsoles")

	consoles, err := h.consoleController.GetConsoles(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(consoles)
}

func (h *ConsoleHandler) getConsole(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("console_handler").Function("getConsole")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	console, err := h.consoleController.GetConsole(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(console)
}

func (h *ConsoleHandler) createConsole(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("console_handler").Function("createConsole")

	var console Console
	if err := c.BodyParser(&console); err != nil {
		return respondError(c, log, invalidBody(err))
	}

	created, err := h.consoleController.CreateConsole(c.UserContext(), &console)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Location(fmt.Sprintf("/api/consoles/%d", created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ConsoleHandler) updateConsole(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("console_handler").Function("updateConsole")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var console Console
	if err := c.BodyParser(&console); err != nil {
		return respondError(c, log, invalidBody(err))
	}

	if err := h.consoleController.UpdateConsole(c.UserContext(), id, &console); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ConsoleHandler) deleteConsole(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("console_handler").Function("deleteConsole")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.consoleController.DeleteConsole(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
