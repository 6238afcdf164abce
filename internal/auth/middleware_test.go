package auth

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestBasicAuthMiddlewareUniformRejection(t *testing.T) {
	mock := newMock(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)

	app := fiber.New()
	app.Get("/private", BasicAuthMiddleware(NewService(mock)), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		expect func()
	}{
		{"missing header", "", nil},
		{"not basic scheme", "Bearer abc", nil},
		{"bad base64", "Basic %%%", nil},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("nocolon")), nil},
		{"unknown user", basicHeader("ghost", "pw"), func() {
			mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
				WithArgs("ghost").
				WillReturnError(pgx.ErrNoRows)
		}},
		{"wrong password", basicHeader("lesliekimm", "wrongpw"), func() {
			mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
				WithArgs("lesliekimm").
				WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
					AddRow("user-1", "lesliekimm", string(hash), time.Now()))
		}},
	}

	var bodies []string
	for _, tc := range cases {
		if tc.expect != nil {
			tc.expect()
		}

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		bodies = append(bodies, string(body))
	}

	for _, body := range bodies {
		if body != `{"error":"Basic Auth Required."}` {
			t.Fatalf("unexpected rejection body: %s", body)
		}
		if body != bodies[0] {
			t.Fatalf("rejection bodies differ between causes")
		}
	}
}

func TestBasicAuthMiddlewareStoreErrorIsNot401(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("lesliekimm").
		WillReturnError(errQuery)

	app := fiber.New()
	app.Get("/private", BasicAuthMiddleware(NewService(mock)), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", basicHeader("lesliekimm", "password"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("store outage must surface as 500, got %d", resp.StatusCode)
	}
}

func TestBasicAuthMiddlewareAccepts(t *testing.T) {
	mock := newMock(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("lesliekimm").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("user-1", "lesliekimm", string(hash), time.Now()))

	app := fiber.New()
	app.Get("/private", BasicAuthMiddleware(NewService(mock)), func(c *fiber.Ctx) error {
		username, _ := c.Locals("username").(string)
		if username != "lesliekimm" {
			return fiber.NewError(fiber.StatusInternalServerError, "missing identity")
		}
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", basicHeader("lesliekimm", "password"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
