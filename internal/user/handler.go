package user

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/cooknest/internal/form"
)

const tokenTTL = 72 * time.Hour

type Handler struct {
	service   *Service
	jwtSecret []byte
	log       *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(service *Service, jwtSecret string, log *slog.Logger) *Handler {
	return &Handler{service: service, jwtSecret: []byte(jwtSecret), log: log.With("component", "user")}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/users/login", h.login)
	r.Post("/api/users/register", h.register)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	user, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		h.log.Error("sign token", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	profile := user.Profile()
	profile.Token = signed
	return c.JSON(profile)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(form.Registration)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	created, err := h.service.Register(c.UserContext(), *payload)
	if err != nil {
		var fieldErrs form.Errors
		switch {
		case errors.As(err, &fieldErrs):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fieldErrs.First(),
				"errors":  fieldErrs,
			})
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		default:
			h.log.Error("register user", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
		}
	}

	h.log.Info("user registered", "user_id", created.ID)
	return c.JSON(created.Profile())
}

// GetUserIDFromCtx extracts the user_id claim from the JWT token the jwt
// middleware stored in c.Locals("user").
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
