// devcheck probes the document store and prints an integrity report:
// connectivity, per-collection counts, and which devices are missing an
// application link. Read-only; safe to run against production.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/config"
	"github.com/Kaiwei0323/web-steve/internal/domain"
	"github.com/Kaiwei0323/web-steve/internal/logger"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "devcheck")
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

	if err := store.Ping(ctx); err != nil {
		log.Fatal("Store ping failed", zap.Error(err))
	}
	fmt.Printf("Store reachable (driver=%s)\n\n", cfg.Store.Driver)

	section("Collection counts")
	specs, err := store.FindAll(ctx, repository.CollectionSpecifications)
	if err != nil {
		log.Fatal("Reading specifications failed", zap.Error(err))
	}
	links, err := store.FindAll(ctx, repository.CollectionApplications)
	if err != nil {
		log.Fatal("Reading application links failed", zap.Error(err))
	}
	fmt.Printf("%-30s %d\n", repository.CollectionSpecifications, len(specs))
	fmt.Printf("%-30s %d\n", repository.CollectionApplications, len(links))

	linkedIDs := make(map[string]bool, len(links))
	for _, link := range links {
		if id, ok := link["device_id"].(string); ok {
			linkedIDs[id] = true
		}
	}

	section("Devices")
	fmt.Printf("%-30s %-10s %-6s %-15s %-10s\n", "deviceName", "status", "TOPS", "tag", "link")
	fmt.Println(strings.Repeat("-", 80))
	for _, spec := range specs {
		name, _ := spec["deviceName"].(string)
		if name == "" {
			name = "(unnamed)"
		}
		status, _ := domain.StatusFromSuperMode(spec["Super Mode"])
		perf := domain.ExtractPerformance(spec["AI Performance"])
		tag := "NULL"
		if t, ok := domain.TagValue(spec).(string); ok {
			tag = t
		}
		linkStatus := "NO_LINK"
		if linkedIDs[spec.ID()] {
			linkStatus = "HAS_LINK"
		}
		fmt.Printf("%-30s %-10s %-6d %-15s %-10s\n", name, status, perf, tag, linkStatus)
	}

	orphans := 0
	for _, link := range links {
		id, _ := link["device_id"].(string)
		found := false
		for _, spec := range specs {
			if spec.ID() == id {
				found = true
				break
			}
		}
		if !found {
			if orphans == 0 {
				section("Orphaned application links")
			}
			name, _ := link["deviceName"].(string)
			fmt.Printf("%-30s device_id=%s\n", name, id)
			orphans++
		}
	}

	fmt.Println()
	if orphans > 0 {
		fmt.Printf("Found %d orphaned application links\n", orphans)
	} else {
		fmt.Println("No orphaned application links")
	}
}

func section(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 80))
}
