package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alitypes/scribe/internal/agent"
	"github.com/alitypes/scribe/internal/ai"
	"github.com/alitypes/scribe/internal/config"
	"github.com/alitypes/scribe/internal/database"
	"github.com/alitypes/scribe/internal/images"
	"github.com/alitypes/scribe/internal/pipeline"
	"github.com/alitypes/scribe/internal/seo"
	"github.com/alitypes/scribe/internal/server"
	"github.com/alitypes/scribe/internal/storage"
	"github.com/alitypes/scribe/internal/trends"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Scribe %s\n", version)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	var logLevel slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Scribe", "version", version)

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Database initialized", "path", cfg.Database.Path)

	// Initialize the content generation stages
	store := storage.NewDiskStore(cfg.Storage.ImageDir, cfg.Storage.PublicPath)
	trendsClient := trends.New(cfg.Generation.TrendsGeo, cfg.Generation.TrendsWindowDays)
	keywords := seo.NewKeywordResearcher(trendsClient)
	competitors := seo.NewCompetitorAnalyzer(time.Duration(cfg.Generation.SearchTimeoutSeconds) * time.Second)
	imageGen := images.NewGenerator(cfg.Generation.HuggingFaceAPIKey, store)

	provider := textProvider(cfg.Generation)
	writer := ai.NewContentGenerator(provider, rand.New(rand.NewSource(time.Now().UnixNano())))

	runner := buildRunner(cfg.Generation, keywords, competitors, writer, imageGen)
	svc := pipeline.NewService(runner, db)

	// Build HTTP server
	srv := server.New(cfg, db, svc, store, version)

	// Expire stale sessions in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessionJanitor(ctx, db)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		srv.Shutdown(context.Background())
	}()

	// Start serving
	slog.Info("Server listening", "addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// textProvider picks the configured text backend, or nil when no usable
// API key is present. A nil provider means template fallback content.
func textProvider(cfg config.GenerationConfig) ai.Provider {
	switch cfg.TextProvider {
	case "openai":
		if p := ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel); p.Configured() {
			return p
		}
	default:
		if p := ai.NewGeminiProvider(cfg.GeminiAPIKey); p.Configured() {
			return p
		}
	}
	slog.Warn("No text provider configured, content will use fallback templates", "provider", cfg.TextProvider)
	return nil
}

// buildRunner assembles the configured orchestration mode. Agent mode
// needs a tool-calling model; without one it degrades to the fixed
// pipeline.
func buildRunner(cfg config.GenerationConfig, keywords *seo.KeywordResearcher, competitors *seo.CompetitorAnalyzer, writer *ai.ContentGenerator, imageGen *images.Generator) pipeline.Runner {
	if cfg.Mode == "agent" {
		if llm := ai.NewGeminiProvider(cfg.GeminiAPIKey); llm.Configured() {
			tools := agent.NewToolbox(keywords, competitors, writer, imageGen)
			slog.Info("Using agent orchestration")
			return pipeline.NewAgentRunner(agent.New(llm, tools))
		}
		slog.Warn("Agent mode requires a Gemini API key, falling back to pipeline mode")
	}
	slog.Info("Using pipeline orchestration")
	return pipeline.New(keywords, competitors, writer, imageGen)
}

// sessionJanitor periodically removes expired sessions.
func sessionJanitor(ctx context.Context, db *database.DB) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := db.DeleteExpiredSessions(); err != nil {
				slog.Warn("Session cleanup failed", "error", err)
			} else if n > 0 {
				slog.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}
