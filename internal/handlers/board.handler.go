package handlers

import (
	"strings"
	"time"

	"girasol/internal/app"
	boardController "girasol/internal/controllers/board"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BoardHandler struct {
	Handler
	boardController boardController.BoardControllerInterface
	authService     *services.AuthService
}

func NewBoardHandler(app app.App, router fiber.Router) *BoardHandler {
	log := logger.New("handlers").File("board_handler")
	return &BoardHandler{
		boardController: app.Controllers.Board,
		authService:     app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BoardHandler) Register() {
	board := h.router.Group(
		"/board",
		h.middleware.RequireAuth(h.authService),
	)

	board.Get("/", h.getBoard)
	board.Get("/digest", h.getWeeklyDigest)
}

// getBoard returns the per-apartment view of active reservations. An
// optional "apartments" query parameter narrows the board to a
// comma-separated list of apartment ids.
func (h *BoardHandler) getBoard(c *fiber.Ctx) error {
	filter, err := parseApartmentFilter(c.Query("apartments"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id in filter"})
	}

	groups, err := h.boardController.GetBoard(c.UserContext(), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"board": groups})
}

func (h *BoardHandler) getWeeklyDigest(c *fiber.Ctx) error {
	filter, err := parseApartmentFilter(c.Query("apartments"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid apartment id in filter"})
	}

	digest, err := h.boardController.GetWeeklyDigest(c.UserContext(), filter, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"digest": digest})
}

func parseApartmentFilter(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	filter := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		filter = append(filter, id)
	}
	return filter, nil
}
