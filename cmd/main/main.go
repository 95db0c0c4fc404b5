package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brokerage-client/src/client"
	"brokerage-client/src/config"
	"brokerage-client/src/credstore"
	"brokerage-client/src/helpers"
	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
	"brokerage-client/src/network"
	"brokerage-client/src/server"
	"brokerage-client/src/storage"
	"brokerage-client/src/utils"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Setup storage
	db, err := storage.NewDatabase(cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// Setup transport and protocol client
	transport := network.NewHTTPTransport(cfg.MConfig, appLogger)
	apiClient := client.NewClient(transport, appLogger, &cfg.API)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Authenticate with remembered credentials
	var creds interfaces.ICredentialStore = credstore.NewFileStore(cfg.Watch.CredentialsPath)
	userName, password, err := creds.Load()
	if err != nil {
		appLogger.Critical("Failed to load credentials: %v", err)
	}
	if userName == "" {
		appLogger.Critical("No credentials stored at %s", cfg.Watch.CredentialsPath)
	}

	loginResult, err := apiClient.Login(ctx, userName, password)
	if err != nil {
		appLogger.Critical("Login failed: %v", err)
	}
	if loginResult.PrimaryAccount != nil {
		appLogger.Info("Primary account: %s (%s)",
			loginResult.PrimaryAccount.AccountID, loginResult.PrimaryAccount.DisplayName)
	}

	scheduler := utils.NewMarketScheduler(appLogger)

	// Backfill stored history before the live loop starts
	backfillHistory(ctx, apiClient, db, scheduler, cfg.MConfig, appLogger)

	// Start HTTP/websocket facade
	var srv interfaces.IDataExchanger = server.NewAPIServer(cfg.MConfig, appLogger, apiClient, db)
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	pollTicker := time.NewTicker(time.Duration(cfg.Watch.PollIntervalSeconds) * time.Second)
	defer pollTicker.Stop()

	// Refresh the session at half its timeout so it never lapses mid-loop
	keepAliveInterval := loginResult.Session.Timeout / 2
	if keepAliveInterval < time.Minute {
		keepAliveInterval = time.Minute
	}
	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	appLogger.Info("Starting quote polling loop (%d symbol(s), every %ds)...",
		len(cfg.Watch.Symbols), cfg.Watch.PollIntervalSeconds)

	for {
		select {
		case <-pollTicker.C:
			if !scheduler.MarketOpen() {
				appLogger.Debug("Market closed, skipping poll")
				continue
			}
			pollQuotes(ctx, apiClient, srv, cfg.MConfig, appLogger)

		case <-keepAliveTicker.C:
			if err := apiClient.KeepAlive(ctx); err != nil {
				if _, ok := err.(*helpers.SessionExpiredError); ok {
					appLogger.Warning("Session expired, logging in again")
					if _, err := apiClient.Login(ctx, userName, password); err != nil {
						appLogger.Critical("Re-login failed: %v", err)
					}
				} else {
					appLogger.Error("Keep-alive failed: %v", err)
				}
			}

		case <-cleanupTicker.C:
			if err := db.CleanupOldData(); err != nil {
				appLogger.Error("Cleanup failed: %v", err)
			}

		case <-quit:
			appLogger.Info("Shutting down...")
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := apiClient.Logout(shutdownCtx); err != nil {
				appLogger.Warning("Logout failed: %v", err)
			}
			shutdownCancel()

			if err := srv.Stop(); err != nil {
				appLogger.Warning("Server stop failed: %v", err)
			}
			return
		}
	}
}

// -----------------------------------------------------------------------------

// backfillHistory fetches the configured number of trading days of daily
// bars and stores them. Per-symbol service errors are logged and skipped;
// only a whole-stream failure aborts the backfill.
func backfillHistory(ctx context.Context, apiClient *client.Client, db interfaces.IDatabase, scheduler *utils.MarketScheduler, cfg *models.MConfig, log *logger.Logger) {
	start, end := scheduler.DefaultHistoryRange(cfg.Watch.HistoryDays)
	log.Info("Backfilling history %s..%s for %d symbol(s)",
		start.Format("2006-01-02"), end.Format("2006-01-02"), len(cfg.Watch.Symbols))

	result, err := apiClient.GetHistoricalPrices(ctx, cfg.Watch.Symbols, start, end)
	if err != nil {
		log.Error("History backfill failed: %v", err)
		return
	}

	for symbol, msg := range result.Errors {
		log.Warning("History unavailable for %s: %s", symbol, msg)
	}
	for symbol, bars := range result.Series {
		if err := db.SavePriceBars(symbol, bars); err != nil {
			log.Error("Failed to store %d bar(s) for %s: %v", len(bars), symbol, err)
			continue
		}
		log.Info("Stored %d bar(s) for %s", len(bars), symbol)
	}
}

// -----------------------------------------------------------------------------

// pollQuotes fetches one round of quotes and pushes the snapshot out.
func pollQuotes(ctx context.Context, apiClient *client.Client, srv interfaces.IDataExchanger, cfg *models.MConfig, log *logger.Logger) {
	quotes, err := apiClient.GetQuotes(ctx, cfg.Watch.Symbols)
	if err != nil {
		log.Error("Quote poll failed: %v", err)
		return
	}

	snapshot := &models.MLatestData{
		Type:      "UPDATE",
		Quotes:    make(map[string]models.MQuote, len(quotes)),
		Errors:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}
	for _, q := range quotes {
		if eq, ok := q.(models.MErrorQuote); ok {
			snapshot.Errors[eq.Symbol] = eq.Message
			continue
		}
		snapshot.Quotes[q.QuoteSymbol()] = q
	}

	srv.Broadcast(snapshot)
	log.Debug("Polled %d quote(s), %d error(s)", len(snapshot.Quotes), len(snapshot.Errors))
}
