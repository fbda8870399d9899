package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

var healthClient = &http.Client{Timeout: 2 * time.Second}

// LivenessProbe проверяет, что шлюз работает.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe опрашивает нижележащие сервисы (editor и бэкенд).
func ReadinessProbe(urls ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, url := range urls {
			resp, err := healthClient.Get(url)
			if err != nil {
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded",
					"down":   url,
				})
			}
			resp.Body.Close()
			if resp.StatusCode >= 500 {
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded",
					"down":   url,
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что шлюз успешно запустился.
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
