// devseed populates the document store with the built-in device fixture:
// specification documents in the legacy import shape plus one application
// link per device. It is the out-of-band write path; the API only reads.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/config"
	"github.com/Kaiwei0323/web-steve/internal/logger"
	"github.com/Kaiwei0323/web-steve/internal/repository"
	"github.com/Kaiwei0323/web-steve/internal/seed"
)

func main() {
	wipe := flag.Bool("wipe", false, "clear both collections before seeding")
	appsFile := flag.String("apps-file", "", "JSON file with [{deviceName, applications}] entries replacing the fixture lists")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "devseed")
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

	res, err := seed.Apply(ctx, store, seed.Options{Wipe: *wipe, ApplicationsFile: *appsFile}, log)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete",
		zap.Int("specifications", res.Specifications),
		zap.Int("links", res.Links),
	)
}
