package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmiranda/spendclass/internal/classifier"
	"github.com/dmiranda/spendclass/internal/config"
	"github.com/dmiranda/spendclass/internal/database"
	spendclassHttp "github.com/dmiranda/spendclass/internal/http"
	txHandler "github.com/dmiranda/spendclass/internal/http/transaction"
	"github.com/dmiranda/spendclass/internal/transaction"
	txStore "github.com/dmiranda/spendclass/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	geminiClassifier, err := classifier.New(context.Background(), classifier.Config{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	})
	if err != nil {
		slog.Error("failed to create classifier", "error", err)
		os.Exit(1)
	}

	transactionService := transaction.NewService(txStore.New(db), geminiClassifier)

	router := spendclassHttp.New(txHandler.NewHandler(transactionService))

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
