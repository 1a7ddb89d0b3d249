package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"myfi/internal/bankfeed"
	"myfi/internal/charts"
	"myfi/internal/cli"
	"myfi/internal/config"
	"myfi/internal/persist"
	"myfi/internal/store"
)

func main() {
	linkFlag := flag.Bool("link", false, "begin a bank link session and print its handle")
	importSession := flag.String("import-session", "", "import accounts and transactions from a completed link session")
	flag.Parse()

	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	db := cli.OpenLocalStore(logger, cfg.SQLiteDBPath)
	defer db.Close()

	ctx := context.Background()

	opts := []store.Option{}
	if cfg.SeedDemoData {
		opts = append(opts, store.WithSeedData())
	}
	if snap, ok := persist.Load(ctx, db, logger.WithComponent("persist")); ok {
		opts = append(opts, store.WithSnapshot(snap))
	}
	s := store.New(opts...)

	bridge := persist.NewBridge(db, s.Snapshot, cfg.SaveQuietWindow, logger.WithComponent("persist"))
	bridge.Attach(s)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		bridge.Flush(flushCtx)
	}()

	client := bankfeed.NewClient(cfg.ProviderAPIURL, cfg.ProviderPublishableKey)
	importer := bankfeed.NewImporter(client, s, logger.WithComponent("bankfeed"))

	switch {
	case *linkFlag:
		session, err := importer.BeginLinkSession(ctx)
		if err != nil {
			os.Exit(1)
		}
		fmt.Printf("session: %s\nclient secret: %s\n", session.ID, session.ClientSecret)
		fmt.Println("complete the provider flow, then run with -import-session", session.ID)

	case *importSession != "":
		result, err := importer.ImportFromSession(ctx, *importSession)
		if err != nil {
			// Partial results stay in the store; flush so they survive.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			bridge.Flush(flushCtx)
			cancel()
			db.Close()
			fmt.Fprintf(os.Stderr, "import failed after %d accounts, %d transactions: %v\n",
				result.Accounts, result.Transactions, err)
			os.Exit(1)
		}
		fmt.Printf("imported %d accounts, %d transactions\n", result.Accounts, result.Transactions)

	default:
		printDashboard(s)
	}
}

func printDashboard(s *store.Store) {
	engine := charts.NewEngine(s)

	fmt.Printf("total income:   %s\n", engine.TotalIncome().StringFixed(2))
	fmt.Printf("total bills:    %s\n", engine.TotalBills().StringFixed(2))
	fmt.Printf("total expenses: %s\n", engine.TotalExpenses().StringFixed(2))
	fmt.Printf("remaining:      %s\n", engine.RemainingBalance().StringFixed(2))

	if byCat := engine.SpendingByCategory(); len(byCat) > 0 {
		fmt.Println("\nspending by category:")
		for _, c := range byCat {
			fmt.Printf("  %-20s %s\n", c.Category, c.Total.StringFixed(2))
		}
	}

	if upcoming := engine.UpcomingBills(); len(upcoming) > 0 {
		fmt.Println("\nbills due in the next 7 days:")
		for _, u := range upcoming {
			fmt.Printf("  %s  %-20s %s\n", u.DueOn, u.Bill.Title, u.Bill.Amount.StringFixed(2))
		}
	}

	if accounts := s.Accounts(); len(accounts) > 0 {
		fmt.Println("\naccounts:")
		for _, a := range accounts {
			fmt.Printf("  %-24s %-8s %10s %s\n", a.Name, a.Type, a.Balance.StringFixed(2), a.Currency)
		}
	}
}
