// devbackup dumps both document collections into a timestamped zip under
// the backup directory, one JSON file per collection.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/backup"
	"github.com/Kaiwei0323/web-steve/internal/config"
	"github.com/Kaiwei0323/web-steve/internal/logger"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "devbackup")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Store connection failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close(context.Background())

	path, err := backup.Archive(ctx, store, cfg.BackupDir, log)
	if err != nil {
		log.Fatal("Backup failed", zap.Error(err))
	}
	log.Info("Backup complete", zap.String("archive", path))
}
