package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/EducAI25/intellidash-insights-ai/adapters/ingest"
	"github.com/EducAI25/intellidash-insights-ai/adapters/llm"
	"github.com/EducAI25/intellidash-insights-ai/adapters/postgres"
	"github.com/EducAI25/intellidash-insights-ai/app"
	"github.com/EducAI25/intellidash-insights-ai/internal/config"
	"github.com/EducAI25/intellidash-insights-ai/internal/errors"
	"github.com/EducAI25/intellidash-insights-ai/internal/migration"
	"github.com/EducAI25/intellidash-insights-ai/ports"
	"github.com/EducAI25/intellidash-insights-ai/ui"
)

// initDatabase connects to PostgreSQL and runs schema migrations
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var chatClient ports.ChatClient
	if appConfig.AI.GeminiKey != "" {
		client, err := llm.NewGeminiClient(llm.Config{
			APIKey:      appConfig.AI.GeminiKey,
			Model:       appConfig.AI.GeminiModel,
			Temperature: appConfig.AI.Temperature,
			MaxTokens:   appConfig.AI.MaxTokens,
			Timeout:     30 * time.Second,
		})
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		chatClient = client
		log.Printf("[Main] Gemini chat enabled (model %s)", appConfig.AI.GeminiModel)
	} else {
		log.Println("[Main] GEMINI_API_KEY not set, chat answers locally")
	}

	service := app.NewDashboardService(
		postgres.NewDashboardRepository(db),
		postgres.NewDashboardDataRepository(db),
		ingest.NewDataReader(appConfig.Upload.MaxRows),
		chatClient,
	)

	if appConfig.Profiling.Enabled {
		go func() {
			addr := "localhost:" + appConfig.Profiling.Port
			log.Printf("[Main] pprof listening on %s", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Printf("[Main] pprof server stopped: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := ui.NewServer(service, appConfig.Upload.MaxBytes)
	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("[Main] Shutdown complete")
}
