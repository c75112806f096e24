package handlers

import (
	"girasol/internal/app"
	apartmentController "girasol/internal/controllers/apartments"
	. "girasol/internal/models"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApartmentHandler struct {
	Handler
	apartmentController apartmentController.ApartmentControllerInterface
	authService         *services.AuthService
}

func NewApartmentHandler(app app.App, router fiber.Router) *ApartmentHandler {
	log := logger.New("handlers").File("apartment_handler")
	return &ApartmentHandler{
		apartmentController: app.Controllers.Apartment,
		authService:         app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ApartmentHandler) Register() {
	apartments := h.router.Group(
		"/apartments",
		h.middleware.RequireAuth(h.authService),
	)

	apartments.Get("/", h.getAll)
	apartments.Post("/", h.middleware.RequireAdmin(), h.create)
	apartments.Get("/:id", h.getByID)
	apartments.Patch("/:id", h.edit)
	apartments.Delete("/:id", h.middleware.RequireAdmin(), h.delete)
	apartments.Put("/:id/personnel", h.assignPersonnel)
}

func (h *ApartmentHandler) getAll(c *fiber.Ctx) error {
	apartments, err := h.apartmentController.GetApartments(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"apartments": apartments})
}

func (h *ApartmentHandler) getByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id"})
	}

	apartment, err := h.apartmentController.GetApartment(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"apartment": apartment})
}

func (h *ApartmentHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req apartmentController.NewApartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	apartment, err := h.apartmentController.CreateApartment(c.UserContext(), req)
	if err != nil {
		log.Warn("failed to create apartment", "error", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"apartment": apartment})
}

func (h *ApartmentHandler) edit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id"})
	}

	var edit ApartmentEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	apartment, err := h.apartmentController.EditApartment(c.UserContext(), id, edit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"apartment": apartment})
}

func (h *ApartmentHandler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id"})
	}

	if err := h.apartmentController.DeleteApartment(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ApartmentHandler) assignPersonnel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id"})
	}

	var body struct {
		Task   TaskType `json:"task"`
		UserID string   `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	apartment, err := h.apartmentController.AssignPersonnel(c.UserContext(), id, body.Task, body.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"apartment": apartment})
}
