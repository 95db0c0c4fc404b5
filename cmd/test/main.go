package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"brokerage-client/src/client"
	"brokerage-client/src/config"
	"brokerage-client/src/credstore"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
	"brokerage-client/src/network"
	"brokerage-client/src/utils"
)

// Manual smoke harness: logs in with the stored credentials, runs one round
// of every read operation against the live service and prints the results.
// Useful for checking connectivity and credentials without starting the
// daemon.

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	lookup := flag.String("lookup", "", "optional symbol lookup search text")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.Name)

	// 4. Setup transport and client
	transport := network.NewHTTPTransport(conf.MConfig, appLogger)
	apiClient := client.NewClient(transport, appLogger, &conf.API)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 5. Login
	creds := credstore.NewFileStore(conf.Watch.CredentialsPath)
	userName, password, err := creds.Load()
	if err != nil || userName == "" {
		appLogger.Critical("No usable credentials at %s: %v", conf.Watch.CredentialsPath, err)
	}

	login, err := apiClient.Login(ctx, userName, password)
	if err != nil {
		appLogger.Critical("Login failed: %v", err)
	}
	fmt.Printf("Logged in as %s, exchange status %s\n", login.Session.UserID, login.ExchangeStatus)
	for _, acct := range login.Accounts {
		marker := " "
		if login.PrimaryAccount != nil && acct.AccountID == login.PrimaryAccount.AccountID {
			marker = "*"
		}
		fmt.Printf("  %s account %s (%s)\n", marker, acct.AccountID, acct.DisplayName)
	}

	// 6. Quotes
	quotes, err := apiClient.GetQuotes(ctx, conf.Watch.Symbols)
	if err != nil {
		appLogger.Error("Quotes failed: %v", err)
	} else {
		fmt.Printf("\nQuotes (%d):\n", len(quotes))
		for _, q := range quotes {
			printQuote(q)
		}
	}

	// 7. Price history for the last few sessions
	scheduler := utils.NewMarketScheduler(appLogger)
	start, end := scheduler.DefaultHistoryRange(5)
	history, err := apiClient.GetHistoricalPrices(ctx, conf.Watch.Symbols, start, end)
	if err != nil {
		appLogger.Error("History failed: %v", err)
	} else {
		fmt.Printf("\nHistory %s..%s:\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		for _, sym := range history.Symbols {
			if msg, ok := history.Errors[sym]; ok {
				fmt.Printf("  %-8s ERROR %s\n", sym, msg)
				continue
			}
			bars := history.Series[sym]
			if len(bars) == 0 {
				fmt.Printf("  %-8s no bars\n", sym)
				continue
			}
			last := bars[len(bars)-1]
			fmt.Printf("  %-8s %d bar(s), last close %.2f on %s\n",
				sym, len(bars), last.Close, time.Unix(last.Timestamp, 0).UTC().Format("2006-01-02"))
		}
	}

	// 8. Optional symbol lookup
	if strings.TrimSpace(*lookup) != "" {
		matches, err := apiClient.FindSymbols(ctx, *lookup)
		if err != nil {
			appLogger.Error("Symbol lookup failed: %v", err)
		} else {
			fmt.Printf("\nSymbol lookup %q (%d):\n", *lookup, len(matches))
			for _, m := range matches {
				fmt.Printf("  %-8s %s\n", m.Symbol, m.Description)
			}
		}
	}

	// 9. Logout
	if err := apiClient.Logout(ctx); err != nil {
		appLogger.Warning("Logout failed: %v", err)
	} else {
		fmt.Println("\nLogged out.")
	}
}

// -----------------------------------------------------------------------------

func printQuote(q models.MQuote) {
	switch v := q.(type) {
	case models.MStockQuote:
		fmt.Printf("  %-8s stock  last %.2f bid %.2f ask %.2f vol %d\n", v.Symbol, v.Last, v.Bid, v.Ask, v.Volume)
	case models.MOptionQuote:
		fmt.Printf("  %-8s option last %.2f strike %.2f exp %04d-%02d-%02d\n",
			v.Symbol, v.Last, v.StrikePrice, v.ExpirationYear, v.ExpirationMonth, v.ExpirationDay)
	case models.MIndexQuote:
		fmt.Printf("  %-8s index  last %.2f\n", v.Symbol, v.Last)
	case models.MFundQuote:
		fmt.Printf("  %-8s fund   nav %.2f change %.2f\n", v.Symbol, v.Nav, v.Change)
	case models.MErrorQuote:
		fmt.Printf("  %-8s ERROR  %s\n", v.Symbol, v.Message)
	default:
		fmt.Printf("  %-8s (unknown variant %T)\n", q.QuoteSymbol(), q)
	}
}
