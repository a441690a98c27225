// cmd/devserver
//
// Local HTTP harness for the pre sign-up trigger. POST a Cognito event to
// /invoke and the response body is exactly what the user pool would receive.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/iamcontainer"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

func main() {
	logx.Info("🚀 Starting pre sign-up dev server...")

	// 1. Configuration + dependency container
	cfg := config.Load()

	container, err := iamcontainer.New(context.Background(), iamcontainer.Deps{Cfg: cfg})
	if err != nil {
		logx.Fatalf("Failed to initialize IAM container: %v", err)
	}

	// 2. Fiber app with routes
	app := newApp(container.PreSignupHandler, cfg)

	// 3. Start with graceful shutdown
	startServer(app, cfg.Server.Port)
}

func startServer(app *fiber.App, port string) {
	go func() {
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("📮 Invoke: POST http://localhost:%s/invoke", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
