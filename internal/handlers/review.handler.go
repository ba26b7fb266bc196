package handlers

import (
	"fmt"

	"collectgames/internal/app"
	reviewController "collectgames/internal/controllers/review"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Handler
	reviewController reviewController.ReviewControllerInterface
}

func NewReviewHandler(app app.App, router fiber.Router) *ReviewHandler {
	log := logger.New("handlers").File("review_handler")
	return &ReviewHandler{
		reviewController: app.Controllers.Review,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReviewHandler) Register() {
	reviews := h.router.Group("/reviews")

	reviews.Get("", h.getReviews)
	reviews.Get("/game/:userCollectionItemId", h.getByCollectionItem)
	reviews.Get("/:id", h.getReview)
	reviews.Post("", h.createReview)
	reviews.Put("/:id", h.updateReview)
	reviews.Delete("/:id", h.deleteReview)
}

func (h *ReviewHandler) getReviews(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("getReviews")

	reviews, err := h.reviewController.GetReviews(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(reviews)
}

func (h *ReviewHandler) getReview(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("getReview")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	review, err := h.reviewController.GetReview(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(review)
}

func (h *ReviewHandler) getByCollectionItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("getByCollectionItem")

	itemID, err := parseID(c, "userCollectionItemId")
	if err != nil {
		return respondError(c, log, err)
	}

	review, err := h.reviewController.GetByCollectionItem(c.UserContext(), itemID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(review)
}

func (h *ReviewHandler) createReview(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("createReview")

	var req reviewController.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, log, invalidBody(err))
	}

	review, err := h.reviewController.CreateReview(c.UserContext(), &req)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Location(fmt.Sprintf("/api/reviews/%d", review.ID))
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) updateReview(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("updateReview")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req reviewController.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, log, invalidBody(err))
	}

	review, err := h.reviewController.UpdateReview(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(review)
}

func (h *ReviewHandler) deleteReview(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("review_handler").Function("deleteReview")

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.reviewController.DeleteReview(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
