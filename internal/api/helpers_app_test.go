package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sablegrove/sitterly/internal/db"
	"github.com/sablegrove/sitterly/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "StrongPass1"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "sitterly-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  email,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create test user %s: %v", email, err)
	}
	return user
}

func loginAndExtractToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	payload := envelope(t, doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": testPassword,
	}), http.StatusOK)

	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("login response missing data: %v", payload)
	}
	token, ok := data["token"].(string)
	if !ok || token == "" {
		t.Fatalf("login response missing token: %v", data)
	}
	return token
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method string, target string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

// envelope asserts the status code and decodes the response envelope.
func envelope(t *testing.T, response *http.Response, wantStatus int) map[string]any {
	t.Helper()
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("expected status %d, got %d: %s", wantStatus, response.StatusCode, string(raw))
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response %s: %v", string(raw), err)
	}
	return payload
}

func assertErrorType(t *testing.T, payload map[string]any, wantType string) {
	t.Helper()

	if payload["status"] != "error" {
		t.Fatalf("expected error envelope, got %v", payload)
	}
	if payload["errorType"] != wantType {
		t.Fatalf("expected errorType %q, got %v", wantType, payload["errorType"])
	}
}

func dataObject(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()

	data, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %v", payload)
	}
	return data
}
