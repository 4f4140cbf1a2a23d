package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/pkg/tracing"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ExporterURL: configs.OtelExporterURL,
		SampleRate:  configs.OtelSampleRate,
		ServiceName: configs.ServiceName,
		Environment: configs.Environment,
	})
	if err != nil {
		log.Fatalf("Error initializing tracing: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	consumer, consumerClient, err := app.CreateOrderPlacedConsumer()
	if err != nil {
		log.Fatalf("Error creating kafka consumer: %v", err)
	}
	if consumer != nil {
		go func() {
			if runErr := consumer.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				logger.Error("Order placed consumer stopped", "error", runErr)
			}
		}()
	}

	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error creating router: %v", err)
	}
	srv := &http.Server{
		Addr:              httpin.Address(configs.HTTPPort),
		Handler:           tracing.WrapHTTPHandler(e, configs.ServiceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server started", "addr", srv.Addr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
	if consumerClient != nil {
		consumerClient.Close()
	}
	jobManager.StopAll(shutdownCtx)
	if err = app.Close(); err != nil {
		logger.Error("Closing application", "error", err)
	}
	if err = shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown", "error", err)
	}
}
