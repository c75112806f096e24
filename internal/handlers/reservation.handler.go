package handlers

import (
	"context"
	"time"

	"girasol/internal/app"
	reservationController "girasol/internal/controllers/reservations"
	. "girasol/internal/models"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	Handler
	reservationController reservationController.ReservationControllerInterface
	authService           *services.AuthService
}

func NewReservationHandler(app app.App, router fiber.Router) *ReservationHandler {
	log := logger.New("handlers").File("reservation_handler")
	return &ReservationHandler{
		reservationController: app.Controllers.Reservation,
		authService:           app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReservationHandler) Register() {
	reservations := h.router.Group(
		"/reservations",
		h.middleware.RequireAuth(h.authService),
	)

	reservations.Get("/", h.getActive)
	reservations.Post("/", h.create)
	reservations.Get("/archived", h.getArchived)
	reservations.Delete("/archived", h.middleware.RequireAdmin(), h.purgeArchived)
	reservations.Get("/:id", h.getByID)
	reservations.Patch("/:id", h.edit)
	reservations.Delete("/:id", h.middleware.RequireAdmin(), h.delete)
	reservations.Post("/:id/cleaning-done", h.markCleaningDone)
	reservations.Post("/:id/laundry-done", h.markLaundryDone)
	reservations.Post("/:id/remarks", h.addRemark)
	reservations.Put("/:id/personnel", h.assignPersonnel)
}

func (h *ReservationHandler) getActive(c *fiber.Ctx) error {
	reservations, err := h.reservationController.GetActiveReservations(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservations": reservations})
}

func (h *ReservationHandler) getArchived(c *fiber.Ctx) error {
	reservations, err := h.reservationController.GetArchivedReservations(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservations": reservations})
}

func (h *ReservationHandler) getByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	reservation, err := h.reservationController.GetReservation(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservation": reservation})
}

func (h *ReservationHandler) create(c *fiber.Ctx) error {
	log := h.log.Function("create")

	var req NewReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reservation, err := h.reservationController.CreateReservation(c.UserContext(), req)
	if err != nil {
		log.Warn("failed to create reservation", "error", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reservation": reservation})
}

func (h *ReservationHandler) edit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var edit ReservationEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reservation, err := h.reservationController.EditReservation(c.UserContext(), id, edit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservation": reservation})
}

func (h *ReservationHandler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	if err := h.reservationController.DeleteReservation(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReservationHandler) markCleaningDone(c *fiber.Ctx) error {
	return h.applyTaskEvent(c, h.reservationController.MarkCleaningDone)
}

func (h *ReservationHandler) markLaundryDone(c *fiber.Ctx) error {
	return h.applyTaskEvent(c, h.reservationController.MarkLaundryDone)
}

func (h *ReservationHandler) addRemark(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reservation, err := h.reservationController.AddRemark(c.UserContext(), id, body.Text)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservation": reservation})
}

func (h *ReservationHandler) assignPersonnel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var body struct {
		Task   TaskType `json:"task"`
		UserID string   `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reservation, err := h.reservationController.AssignPersonnel(c.UserContext(), id, body.Task, body.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservation": reservation})
}

// purgeArchived permanently deletes archived reservations older than the
// "before" query parameter (RFC 3339).
func (h *ReservationHandler) purgeArchived(c *fiber.Ctx) error {
	log := h.log.Function("purgeArchived")

	before := c.Query("before")
	if before == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "before query parameter required"})
	}

	cutoff, err := time.Parse(time.RFC3339, before)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid before timestamp"})
	}

	purged, err := h.reservationController.PurgeArchived(c.UserContext(), cutoff)
	if err != nil {
		return errorResponse(c, err)
	}

	log.Info("purged archived reservations", "count", purged, "cutoff", cutoff)
	return c.JSON(fiber.Map{"purged": purged})
}

func (h *ReservationHandler) applyTaskEvent(
	c *fiber.Ctx,
	apply func(ctx context.Context, id uuid.UUID) (*Reservation, error),
) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	reservation, err := apply(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"reservation": reservation})
}
