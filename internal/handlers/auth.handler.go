package handlers

import (
	"girasol/internal/app"
	authController "girasol/internal/controllers/auth"
	"girasol/internal/handlers/middleware"
	. "girasol/internal/models"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
	authService    *services.AuthService
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		authService:    app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)

	protected := auth.Group("/", h.middleware.RequireAuth(h.authService))
	protected.Get("/me", h.getCurrentUser)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		log.Warn("registration failed", "email", req.Email, "error", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user.ToProfile(),
		"token": token,
	})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		log.Info("login failed", "email", req.Email)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user.ToProfile(),
		"token": token,
	})
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.ToProfile(),
	})
}
