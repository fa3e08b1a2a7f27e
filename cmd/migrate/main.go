package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/storage"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/config"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.Close(ctx)

	if err := storage.Migrate(ctx, store); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
