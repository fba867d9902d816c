// career-engine is the Job/Resource Matching and Skill-Gap MCP server for
// the NextGen Career platform.
//
// Exposes five MCP tools: score_job, rank_jobs, skill_gap_analysis,
// recommend_resources, mentor_chat. Runs over stdio transport.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/chat"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/mentorserver"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := engine.LoadConfig()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}
	setLogLevel(cfg.LogLevel)

	engine.Init(cfg)
	engine.InitCache(cfg.RedisURL, cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer st.Close()

	mentorserver.Init(st, initMentor(ctx, cfg, st))

	slog.Info("starting career-engine", slog.String("version", version))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "career-engine",
		Version: version,
	}, nil)

	mentorserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 5))

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
	slog.Info("metrics at shutdown\n" + engine.FormatMetrics())
}

// openStore connects Postgres when DATABASE_URL is configured, otherwise the
// embedded SQLite store.
func openStore(ctx context.Context, cfg engine.Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		st, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err == nil {
			slog.Info("store: postgres connected")
			return st, nil
		}
		slog.Warn("store: postgres unavailable, falling back to sqlite", slog.Any("error", err))
	}
	st, err := store.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	slog.Info("store: sqlite opened", slog.String("path", cfg.SQLitePath))
	return st, nil
}

// initMentor wires the Gemini-backed mentor. Chat stays disabled without an
// API key; the matching tools work regardless.
func initMentor(ctx context.Context, cfg engine.Config, st store.Store) *chat.Mentor {
	if cfg.GeminiAPIKey == "" {
		slog.Warn("gemini api key not set, mentor chat disabled")
		return nil
	}
	completer, err := engine.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CompletionTimeout, cfg.CompletionRPS)
	if err != nil {
		slog.Warn("completer init failed, mentor chat disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("completer ready", slog.String("model", cfg.GeminiModel))
	return chat.NewMentor(completer, mentorserver.NewStoreContext(st), cfg.SessionTTL)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}
}
