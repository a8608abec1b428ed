package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func doGet(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(raw)
}

func TestFiberErrorHandlerEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("db exploded")
	})

	status, body := doGet(t, app, "/missing")
	if status != fiber.StatusNotFound {
		t.Errorf("status = %d", status)
	}
	for _, want := range []string{`"code":404`, `"status":"error"`, "Student not found"} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}

	// plain errors fall back to 500
	status, body = doGet(t, app, "/boom")
	if status != fiber.StatusInternalServerError || !strings.Contains(body, `"code":500`) {
		t.Errorf("status=%d body=%q", status, body)
	}
}

func TestValidationErrorFieldDetails(t *testing.T) {
	type form struct {
		Roll string `validate:"required"`
		Year int    `validate:"min=1,max=4"`
	}

	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		return ValidationError(c, validator.New().Struct(&form{Year: 9}))
	})
	app.Get("/other", func(c *fiber.Ctx) error {
		return ValidationError(c, errors.New("not from the validator"))
	})

	status, body := doGet(t, app, "/check")
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d", status)
	}
	for _, want := range []string{"Validation failed", `"Roll":"required"`, `"Year":"max"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}

	// non-validator errors degrade to the generic 400
	status, body = doGet(t, app, "/other")
	if status != fiber.StatusBadRequest || !strings.Contains(body, "Invalid input") {
		t.Errorf("status=%d body=%q", status, body)
	}
}
