package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"rawstore/internal/model"
	"rawstore/internal/service"
)

// RegisterRoutes attaches the HTTP surface to the Fiber app. The service
// routes live under the service-name prefix; handlers stay thin and free of
// business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.AuthService, serviceName string) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	grp := app.Group("/" + serviceName)
	grp.Get("/info", Info(svc))
	grp.Get("/presign", Presign(svc))
	grp.Post("/authorize", Authorize(svc))
	grp.Post("/", Authorize(svc))

	// Everything unmatched gets the service identification body.
	app.Use(NotFound(serviceName))
}

// authToken extracts the bearer credential: the Auth-Token header with a
// fallback to the jwt query parameter.
func authToken(c *fiber.Ctx) string {
	if tok := c.Get("Auth-Token"); tok != "" {
		return tok
	}
	return c.Query("jwt")
}

// HealthCheck reports dependency health: currently DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Info returns the storage URL prefixes of the authenticated user.
func Info(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Info(c.UserContext(), authToken(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Authorize validates an upload request and returns pre-signed upload grants.
func Authorize(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.UploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		res, err := svc.Authorize(c.UserContext(), authToken(c), &req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Presign returns the given URL, signed when it is not publicly fetchable.
func Presign(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawURL := c.Query("url")
		if rawURL == "" {
			return writeError(c, fiber.StatusBadRequest, "URL_REQUIRED", "url query parameter is required")
		}
		signed, err := svc.Presign(c.UserContext(), authToken(c), rawURL, c.Query("ownerid"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": signed})
	}
}

// NotFound identifies the service on unmatched routes.
func NotFound(serviceName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"info": serviceName + " service - part of the datahub platform",
			"docs": "https://docs.datahub.io/",
		})
	}
}
