package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Beyondthell/shopify-auction-backend/internal/config"
	ledger "github.com/Beyondthell/shopify-auction-backend/internal/ledgerService"
	"github.com/Beyondthell/shopify-auction-backend/internal/mailer"
	"github.com/Beyondthell/shopify-auction-backend/internal/repository"
	"github.com/Beyondthell/shopify-auction-backend/internal/server"
	handler "github.com/Beyondthell/shopify-auction-backend/services/auction/handler"
	"github.com/Beyondthell/shopify-auction-backend/utils"
)

func main() {
	cfg := config.Load()

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		utils.Fatal("failed to initialize storage", map[string]any{"backend": cfg.StorageBackend, "error": err.Error()})
	}

	ledgerSvc := ledger.NewLedgerService(store)

	router := server.SetupRouter(ledgerSvc, newMailer(cfg), server.RouterConfig{
		AdminSecret:      cfg.AdminSecret,
		BidRatePerMinute: cfg.BidRatePerMinute,
		BidRateBurst:     cfg.BidRateBurst,
	})

	port := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// newStore builds the configured AuctionStore. The handle is created once
// here and owned by the ledger for the life of the process.
func newStore(ctx context.Context, cfg config.Config) (repository.AuctionStore, error) {
	if cfg.StorageBackend == "dynamodb" {
		client, err := repository.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		if err != nil {
			return nil, err
		}
		return repository.NewDynamoRepo(client, cfg.StatesTable, cfg.BidsTable), nil
	}
	return repository.NewMemoryRepo(), nil
}

// newMailer picks SMTP when configured, the log-only mailer otherwise.
func newMailer(cfg config.Config) handler.WinnerMailerInterface {
	if cfg.SMTPHost == "" {
		return mailer.LogMailer{}
	}
	return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
}
