package user

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/cooknest/internal/logger"
)

const testSecret = "test-secret"

func makeAppWithUserHandler(repo Repository) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(repo), testSecret, logger.Discard()).RegisterPublicRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s request failed: %v", path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestUserRoutes_Registered(t *testing.T) {
	app := makeAppWithUserHandler(NewInMemoryRepository(nil))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, p := range []string{"/api/users/login", "/api/users/register"} {
		if !routes[p] {
			t.Fatalf("expected route %q to be registered", p)
		}
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeAppWithUserHandler(repo)

	code, body := postJSON(t, app, "/api/users/register", `{"name":"Asha","email":"asha@example.com","password":"Abcdef1"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 on register, got %d: %s", code, body)
	}
	if strings.Contains(body, "Abcdef1") || strings.Contains(body, "password") {
		t.Fatalf("register response must not expose the password: %s", body)
	}

	stored, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Password == "Abcdef1" {
		t.Fatalf("password stored in plain text")
	}

	code, body = postJSON(t, app, "/api/users/login", `{"email":"asha@example.com","password":"Abcdef1"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", code, body)
	}

	var profile Profile
	if err := json.Unmarshal([]byte(body), &profile); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if profile.ID != stored.ID || profile.Name != "Asha" || profile.Token == "" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	tok, err := jwt.Parse(profile.Token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims := tok.Claims.(jwt.MapClaims); int(claims["user_id"].(float64)) != stored.ID {
		t.Fatalf("token user_id claim mismatch: %v", claims["user_id"])
	}
}

func TestRegister_Rejections(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := makeAppWithUserHandler(repo)

	code, body := postJSON(t, app, "/api/users/register", `{"name":"Asha","email":"asha@example.com","password":"abcdef1"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", code)
	}
	if !strings.Contains(body, "uppercase, lowercase, and number") {
		t.Fatalf("unexpected body: %s", body)
	}

	code, _ = postJSON(t, app, "/api/users/register", `{"name":"Asha","email":"asha@example.com","password":"Abcdef1"}`)
	if code != fiber.StatusOK {
		t.Fatalf("expected first registration to succeed, got %d", code)
	}
	code, body = postJSON(t, app, "/api/users/register", `{"name":"Other","email":"ASHA@example.com","password":"Abcdef1"}`)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", code, body)
	}

	code, _ = postJSON(t, app, "/api/users/register", `{bad json`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := makeAppWithUserHandler(NewInMemoryRepository(nil))

	code, body := postJSON(t, app, "/api/users/login", `{"email":"nobody@example.com","password":"Abcdef1"}`)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if !strings.Contains(body, "Invalid email or password") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGetUserIDFromCtx(t *testing.T) {
	app := fiber.New()
	app.Get("/who", func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": v}})
		}
		id, err := GetUserIDFromCtx(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	res, _ := app.Test(httptest.NewRequest("GET", "/who", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/who", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || !strings.Contains(string(b), `"id":7`) {
		t.Fatalf("unexpected response %d %s", res.StatusCode, string(b))
	}
}
