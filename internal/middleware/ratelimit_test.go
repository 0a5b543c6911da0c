package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupRateLimitedApp(t *testing.T, max int, window time.Duration) (*fiber.App, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(RateLimit(cache, max, window))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, mr, cleanup
}

func TestRateLimitAllowsUpToCap(t *testing.T) {
	app, _, cleanup := setupRateLimitedApp(t, 3, time.Minute)
	defer cleanup()

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}
}

func TestRateLimitRejectsBeyondCap(t *testing.T) {
	app, _, cleanup := setupRateLimitedApp(t, 2, time.Minute)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if _, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil)); err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("over-cap request: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 beyond cap, got %d", resp.StatusCode)
	}
}

func TestRateLimitWindowExpires(t *testing.T) {
	app, mr, cleanup := setupRateLimitedApp(t, 1, time.Minute)
	defer cleanup()

	if _, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil)); err != nil {
		t.Fatalf("first request: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 within window, got %d", resp.StatusCode)
	}

	mr.FastForward(2 * time.Minute)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("post-window request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected window reset after expiry, got %d", resp.StatusCode)
	}
}

func TestRateLimitNoopWithoutCache(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(nil, 1, time.Minute))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected no-op limiter without cache, got %d", resp.StatusCode)
		}
	}
}
