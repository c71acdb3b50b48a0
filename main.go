package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/clinsight/cdss-gateway/pkg/aigateway"
	"github.com/clinsight/cdss-gateway/pkg/api"
	"github.com/clinsight/cdss-gateway/pkg/api/handler"
	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/gemini"
	"github.com/clinsight/cdss-gateway/pkg/logger"
	"github.com/clinsight/cdss-gateway/pkg/repository"
	"github.com/clinsight/cdss-gateway/pkg/services"
	"github.com/clinsight/cdss-gateway/pkg/workers"
)

type Config struct {
	GeminiAPIKey         string        `env:"GEMINI_API_KEY"`
	GeminiModel          string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GatewayAPIKey        string        `env:"AI_GATEWAY_API_KEY"`
	GatewayBaseURL       string        `env:"AI_GATEWAY_BASE_URL" envDefault:"https://ai.gateway.lovable.dev/v1"`
	GatewayModel         string        `env:"AI_GATEWAY_MODEL" envDefault:"google/gemini-2.5-flash"`
	Port                 string        `env:"PORT" envDefault:"8080"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	generator, err := setupGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating generation client: %w", err)
	}

	sessionRepository := repository.NewSessionRepository(cfg.SessionTTL)

	analysisService := services.NewAnalysisService(generator, sessionRepository)
	chatService := services.NewChatService(generator, sessionRepository)

	analyzeHandler := handler.NewAnalyze(analysisService)
	chatHandler := handler.NewChat(chatService)
	sessionHandler := handler.NewSession(sessionRepository)

	router := api.NewRouter(api.Handlers{
		Analyze:           analyzeHandler.Handle,
		Chat:              chatHandler.Handle,
		SessionGet:        sessionHandler.Get,
		SessionDelete:     sessionHandler.Delete,
		SessionUpload:     sessionHandler.UploadFiles,
		SessionDeleteFile: sessionHandler.DeleteFile,
	})

	return workers.Group{
		workers.NewHTTPServer(":"+cfg.Port, router),
		workers.NewSessionSweeper(sessionRepository, cfg.SessionSweepInterval),
	}, nil
}

// setupGenerator picks the provider by which credential is present. The key
// is validated here, once, at startup; handlers never touch the environment.
func setupGenerator(cfg Config) (services.Generator, error) {
	switch {
	case cfg.GeminiAPIKey != "":
		slog.Info("using Gemini generation client", "model", cfg.GeminiModel)
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	case cfg.GatewayAPIKey != "":
		slog.Info("using AI gateway generation client", "model", cfg.GatewayModel, "baseURL", cfg.GatewayBaseURL)
		return aigateway.NewClient(cfg.GatewayAPIKey, cfg.GatewayBaseURL, cfg.GatewayModel)
	default:
		return nil, domain.ErrMissingAPIKey
	}
}
