package handlers

import (
	"girasol/internal/app"
	userController "girasol/internal/controllers/users"
	. "girasol/internal/models"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
	authService    *services.AuthService
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		authService:    app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group(
		"/users",
		h.middleware.RequireAuth(h.authService),
	)

	users.Get("/", h.getAll)
	users.Get("/eligible", h.getEligible)
	users.Get("/:id", h.getByID)
	users.Patch("/:id", h.middleware.RequireAdmin(), h.edit)
}

func (h *UserHandler) getAll(c *fiber.Ctx) error {
	users, err := h.userController.GetUsers(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return c.JSON(fiber.Map{"users": profiles})
}

// getEligible lists users whose task set contains the task query parameter.
func (h *UserHandler) getEligible(c *fiber.Ctx) error {
	task := TaskType(c.Query("task"))

	users, err := h.userController.GetEligibleUsers(c.UserContext(), task)
	if err != nil {
		return errorResponse(c, err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return c.JSON(fiber.Map{"users": profiles})
}

func (h *UserHandler) getByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.userController.GetUser(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

func (h *UserHandler) edit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var edit UserEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.userController.EditUser(c.UserContext(), id, edit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"user": user.ToProfile()})
}
