package handlers

import (
	"fmt"

	"collectgames/internal/app"
	collectionController "collectgames/internal/controllers/collection"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CollectionHandler struct {
	Handler
	collectionController collectionController.CollectionControllerInterface
}

func NewCollectionHandler(app app.App, router fiber.Router) *CollectionHandler {
	log := logger.New("handlers").File("collection_handler")
	return &CollectionHandler{
		collectionController: app.Controllers.Collection,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CollectionHandler) Register() {
	collection := h.router.Group("/usercollection")

	collection.Get("", h.getCollection)
	collection.Get("/export/pdf", h.exportPDF)
	collection.Get("/:id", h.getItem)
	collection.Post("", h.addItem)
	collection.Put("/:id", h.updateItem)
	collection.Delete("/:id", h.deleteItem)
}

func (h *CollectionHandler) getCollection(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("getCollection")

	items, err := h.collectionController.GetCollection(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(items)
}

func (h *CollectionHandler) getItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("getItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	item, err := h.collectionController.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(item)
}

func (h *CollectionHandler) addItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("addItem")

	form, err := newFormReader(c)
	if err != nil {
		return respondError(c, log, err)
	}

	req := collectionController.AddItemRequest{
		Title:    form.String("title"),
		Platform: form.String("platform"),
		Notes:    form.OptionalNonEmpty("notes"),
	}
	if condition := form.OptionalNonEmpty("condition"); condition != nil {
		value := Condition(*condition)
		req.Condition = &value
	}
	if req.PricePaid, err = form.OptionalDecimal("pricePaid"); err != nil {
		return respondError(c, log, err)
	}
	if req.PurchaseDate, err = form.OptionalTime("purchaseDate"); err != nil {
		return respondError(c, log, err)
	}
	if req.Image, err = form.Image("image"); err != nil {
		return respondError(c, log, err)
	}

	item, err := h.collectionController.AddItem(c.UserContext(), &req)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Location(fmt.Sprintf("/api/usercollection/%d", item.ID))
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CollectionHandler) updateItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("updateItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	form, err := newFormReader(c)
	if err != nil {
		return respondError(c, log, err)
	}

	req := collectionController.UpdateItemRequest{
		Notes: form.OptionalString("notes"),
	}
	if condition := form.OptionalNonEmpty("condition"); condition != nil {
		value := Condition(*condition)
		req.Condition = &value
	}
	if req.PricePaid, err = form.OptionalDecimal("pricePaid"); err != nil {
		return respondError(c, log, err)
	}
	if req.PurchaseDate, err = form.OptionalTime("purchaseDate"); err != nil {
		return respondError(c, log, err)
	}
	if req.Image, err = form.Image("image"); err != nil {
		return respondError(c, log, err)
	}

	item, err := h.collectionController.UpdateItem(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(item)
}

func (h *CollectionHandler) deleteItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("deleteItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.collectionController.DeleteItem(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CollectionHandler) exportPDF(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("collection_handler").Function("exportPDF")

	report, err := h.collectionController.ExportPDF(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return sendPDF(c, report.Filename, report.Data)
}
