package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1"`
}

func sampleApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/", func(c *fiber.Ctx) error {
		var p samplePayload
		if err := ParseAndValidate(c, &p); err != nil {
			return err
		}
		return c.JSON(p)
	})
	return app
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Detail string `json:"detail"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out.Detail
}

func TestParseAndValidateAccepts(t *testing.T) {
	resp, _ := post(t, sampleApp(), `{"name":"x","count":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestParseAndValidateRejectsMalformedBody(t *testing.T) {
	resp, detail := post(t, sampleApp(), `{"name":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(detail, "Invalid request body") {
		t.Errorf("detail = %q", detail)
	}
}

func TestParseAndValidateRejectsInvalidFields(t *testing.T) {
	resp, detail := post(t, sampleApp(), `{"count":0}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(detail, "Name (required)") {
		t.Errorf("detail = %q", detail)
	}
}
