package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrbgold/jrb-backend/config"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	"github.com/jrbgold/jrb-backend/internal/db"
	"github.com/jrbgold/jrb-backend/internal/rates"
	"github.com/jrbgold/jrb-backend/internal/storage"
	"github.com/jrbgold/jrb-backend/pkg/logger"
)

// 가격표 XLSX 생성 도구
//
//	go run ./cmd/pricelist -out price-list.xlsx
//	go run ./cmd/pricelist -live -publish
func main() {
	out := flag.String("out", "jrb-gold-price-list.xlsx", "output file path")
	live := flag.Bool("live", false, "fetch live rates before pricing (requires METAL_API_KEY)")
	publish := flag.Bool("publish", false, "upload the workbook to S3 and print a download link")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: "warn", Format: "console"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Initialize(ctx, &cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := db.Seed(db.GetDB()); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	provider := rates.NewProvider(
		rates.NewGoldAPIClient(cfg.Rates.APIURL, cfg.Rates.APIKey, cfg.Rates.Currency),
		rates.WithFallback(cfg.Rates.Fallback),
		rates.WithInterCallDelay(cfg.Rates.InterCallDelay),
	)
	if *live {
		if cfg.Rates.APIKey == "" {
			log.Fatal("-live requires METAL_API_KEY")
		}
		fmt.Println("Fetching live metal rates...")
		if err := provider.Refresh(ctx); err != nil {
			log.Fatal("Failed to refresh rates:", err)
		}
		for _, warning := range provider.Status().Warnings {
			fmt.Println("warning:", warning)
		}
	}

	var objectStore service.ObjectStore
	if *publish {
		if cfg.S3.Bucket == "" {
			log.Fatal("-publish requires AWS_S3_BUCKET")
		}
		objectStore = storage.NewS3Storage(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL)
	}

	priceLists := service.NewPriceListService(repository.NewProductRepository(db.GetDB()), provider, objectStore, storage.DefaultPresignExpiry)

	data, err := priceLists.Export()
	if err != nil {
		log.Fatal("Failed to build price list:", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal("Failed to write price list:", err)
	}
	fmt.Printf("Price list written to %s (rates as of %s)\n", *out, provider.Snapshot().AsOf().Format(time.RFC3339))

	if *publish {
		published, err := priceLists.Publish(ctx)
		if err != nil {
			log.Fatal("Failed to publish price list:", err)
		}
		fmt.Printf("Published %s\nDownload link (valid until %s):\n%s\n",
			published.Key, published.ExpiresAt.Format(time.RFC3339), published.DownloadURL)
	}
}
