package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskreporter/internal/app"
	"github.com/riskreporter/internal/server"
)

func main() {
	configDir := flag.String("config", "./configs", "config directory")
	once := flag.Bool("once", false, "run one report and write it to the output dir instead of serving")
	apiKey := flag.String("api-key", "", "model credential for -once mode (falls back to provider env vars)")
	model := flag.String("model", "", "model identifier override for -once mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(*configDir)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer func() {
		if err := application.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if *once {
		runOnce(ctx, application, *apiKey, *model)
		return
	}

	cfg := application.Config()
	srv := server.New(application, server.Options{
		Addr:    cfg.Server.Addr,
		Timeout: cfg.Server.Timeout.Duration,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runOnce(ctx context.Context, application *app.Application, apiKey, model string) {
	if apiKey == "" {
		// mirror the provider env fallback the builders use, so
		// `riskreporter -once` works with just GEMINI_API_KEY set
		for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
			if v := os.Getenv(name); v != "" {
				apiKey = v
				break
			}
		}
	}

	artifact, err := application.GenerateReport(ctx, app.GenerateRequest{
		APIKey: apiKey,
		Model:  model,
	})
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("report run interrupted: %v", ctx.Err())
			return
		}
		log.Fatalf("report run failed: %v", err)
	}

	path, err := application.WriteArtifact(artifact)
	if err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	log.Printf("report written: %s (%d records)", path, artifact.Records)
}
