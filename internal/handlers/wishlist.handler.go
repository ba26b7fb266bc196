package handlers

import (
	"fmt"

	"collectgames/internal/app"
	wishlistController "collectgames/internal/controllers/wishlist"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Handler
	wishlistController wishlistController.WishlistControllerInterface
}

func NewWishlistHandler(app app.App, router fiber.Router) *WishlistHandler {
	log := logger.New("handlers").File("wishlist_handler")
	return &WishlistHandler{
		wishlistController: app.Controllers.Wishlist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *WishlistHandler) Register() {
	wishlist := h.router.Group("/wishlist")

	wishlist.Get("", h.getWishlist)
	wishlist.Get("/export/pdf", h.exportPDF)
	wishlist.Get("/:id", h.getItem)
	wishlist.Post("", h.addItem)
	wishlist.Put("/:id", h.updateItem)
	wishlist.Delete("/:id", h.deleteItem)
	wishlist.Post("/:id/purchase", h.purchase)
}

func (h *WishlistHandler) getWishlist(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("getWishlist")

	items, err := h.wishlistController.GetWishlist(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(items)
}

func (h *WishlistHandler) getItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("getItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	item, err := h.wishlistController.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(item)
}

func (h *WishlistHandler) addItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("addItem")

	var req wishlistController.AddWishlistItemRequest
	if isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, log, invalidBody(err))
		}
	} else {
		form, err := newFormReader(c)
		if err != nil {
			return respondError(c, log, err)
		}

		req = wishlistController.AddWishlistItemRequest{
			Title:        form.String("title"),
			Platform:     form.String("platform"),
			ImageURL:     form.OptionalNonEmpty("imageUrl"),
			PurchaseLink: form.OptionalNonEmpty("purchaseLink"),
			Notes:        form.OptionalNonEmpty("notes"),
		}
		if priority := form.OptionalNonEmpty("priority"); priority != nil {
			value := Priority(*priority)
			req.Priority = &value
		}
		if req.EstimatedPrice, err = form.OptionalDecimal("estimatedPrice"); err != nil {
			return respondError(c, log, err)
		}
		if req.Image, err = form.Image("image"); err != nil {
			return respondError(c, log, err)
		}
	}

	item, err := h.wishlistController.AddItem(c.UserContext(), &req)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Location(fmt.Sprintf("/api/wishlist/%d", item.ID))
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *WishlistHandler) updateItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("updateItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req wishlistController.UpdateWishlistItemRequest
	if isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, log, invalidBody(err))
		}
	} else {
		form, err := newFormReader(c)
		if err != nil {
			return respondError(c, log, err)
		}

		req = wishlistController.UpdateWishlistItemRequest{
			Title:        form.OptionalString("title"),
			Platform:     form.OptionalString("platform"),
			ImageURL:     form.OptionalNonEmpty("imageUrl"),
			PurchaseLink: form.OptionalString("purchaseLink"),
			Notes:        form.OptionalString("notes"),
		}
		if priority := form.OptionalNonEmpty("priority"); priority != nil {
			value := Priority(*priority)
			req.Priority = &value
		}
		if req.EstimatedPrice, err = form.OptionalDecimal("estimatedPrice"); err != nil {
			return respondError(c, log, err)
		}
		if req.Image, err = form.Image("image"); err != nil {
			return respondError(c, log, err)
		}
	}

	item, err := h.wishlistController.UpdateItem(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(item)
}

func (h *WishlistHandler) deleteItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("deleteItem")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.wishlistController.DeleteItem(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) purchase(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("purchase")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req wishlistController.PurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, log, invalidBody(err))
		}
	}

	item, err := h.wishlistController.Purchase(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Location(fmt.Sprintf("/api/usercollection/%d", item.ID))
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *WishlistHandler) exportPDF(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("wishlist_handler").Function("exportPDF")

	report, err := h.wishlistController.ExportPDF(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return sendPDF(c, report.Filename, report.Data)
}
