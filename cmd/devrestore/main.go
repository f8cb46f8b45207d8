// devrestore reimports document collections from a backup archive,
// defaulting to the newest zip in the backup directory. Restoring wipes
// each collection found in the archive before reinserting its documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/backup"
	"github.com/Kaiwei0323/web-steve/internal/config"
	"github.com/Kaiwei0323/web-steve/internal/logger"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

func main() {
	file := flag.String("file", "", "archive to restore (default: newest in the backup dir)")
	list := flag.Bool("list", false, "list available archives and exit")
	dryRun := flag.Bool("dry-run", false, "report what would be restored without writing")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "devrestore")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *list {
		archives, err := backup.ListArchives(cfg.BackupDir)
		if err != nil {
			log.Fatal("Listing archives failed", zap.Error(err))
		}
		for _, a := range archives {
			fmt.Println(a)
		}
		return
	}

	path := *file
	if path == "" {
		path, err = backup.LatestArchive(cfg.BackupDir)
		if err != nil {
			log.Fatal("No archive to restore", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Store connection failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close(context.Background())

	res, err := backup.Restore(ctx, store, path, *dryRun, log)
	if err != nil {
		log.Fatal("Restore failed", zap.String("archive", path), zap.Error(err))
	}
	for collection, count := range res {
		log.Info("Restore summary",
			zap.String("collection", collection),
			zap.Int("documents", count),
			zap.Bool("dry_run", *dryRun),
		)
	}
}
