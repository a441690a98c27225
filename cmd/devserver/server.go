package main

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/errx"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Trigger is the part of the pre sign-up handler the server drives.
type Trigger interface {
	Handle(ctx context.Context, raw json.RawMessage) (presignup.Outcome, error)
}

func newApp(trigger Trigger, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cognito-linker devserver",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    requestIDHeader,
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Get("/health", healthCheckHandler(cfg))
	app.Post("/invoke", invokeHandler(trigger))

	app.Use(notFoundHandler)
	return app
}

func healthCheckHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "healthy",
			"service":        "cognito-linker",
			"version":        cfg.Server.Version,
			"trigger_source": cfg.PreSignup.TriggerSource,
		})
	}
}

// invokeHandler runs one trigger invocation. The request body is the raw
// Cognito event; the response body is what the pool would receive.
func invokeHandler(trigger Trigger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := kernel.WithRequestID(c.UserContext(), requestID(c))

		// Body is only valid for the lifetime of the handler.
		raw := append(json.RawMessage(nil), c.Body()...)

		out, err := trigger.Handle(ctx, raw)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(out.Body)
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": requestID(c),
	})
}

// globalErrorHandler renders errx errors with their code; anything else is a
// generic internal error.
func globalErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":      e.Message,
			"code":       "FIBER_ERROR",
			"status":     e.Code,
			"request_id": requestID(c),
		})
	}

	logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": requestID(c),
		"code":       errx.CodeOf(err),
	}).Warnf("Invocation rejected: %v", err)

	resp := errx.ToHTTP(err)
	return c.Status(resp.StatusCode).JSON(fiber.Map{
		"error":      resp.Message,
		"code":       resp.Code,
		"type":       resp.Type,
		"status":     resp.StatusCode,
		"details":    resp.Details,
		"request_id": requestID(c),
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
		return id
	}
	return c.Get(requestIDHeader)
}
