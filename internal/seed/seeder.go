package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/domain"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

// Options controls a seeding run.
type Options struct {
	// Wipe clears both collections before inserting anything.
	Wipe bool
	// ApplicationsFile optionally points at a JSON file of
	// [{"deviceName": ..., "applications": [names...]}] entries that
	// replaces the fixture's application lists.
	ApplicationsFile string
}

// Result reports what a seeding run inserted.
type Result struct {
	Specifications int
	Links          int
}

type applicationSeed struct {
	DeviceName   string   `json:"deviceName"`
	Applications []string `json:"applications"`
}

// Apply seeds the store with the device fixture: specification documents
// in the legacy import shape, then one application link per device with
// entries resolved through the catalog. Links are keyed by the identifier
// each specification received from the store, so they survive any backend.
func Apply(ctx context.Context, store repository.DocumentStore, opts Options, logger *zap.Logger) (*Result, error) {
	if opts.Wipe {
		for _, collection := range repository.Collections {
			deleted, err := store.DeleteAll(ctx, collection)
			if err != nil {
				logger.Error("Wipe failed", zap.String("collection", collection), zap.Error(err))
				return nil, fmt.Errorf("failed to wipe %s", collection)
			}
			logger.Info("Collection wiped", zap.String("collection", collection), zap.Int64("deleted", deleted))
		}
	}

	res := &Result{}
	for _, device := range Devices() {
		id, err := store.InsertOne(ctx, repository.CollectionSpecifications, device.LegacyDocument())
		if err != nil {
			logger.Error("Seeding specification failed", zap.String("device", device.Name), zap.Error(err))
			return nil, fmt.Errorf("failed to seed specifications")
		}
		logger.Info("Specification seeded", zap.String("device", device.Name), zap.String("id", id))
		res.Specifications++
	}

	apps, err := applicationSeeds(opts.ApplicationsFile)
	if err != nil {
		return nil, err
	}

	// Map names through the store rather than the insert results, so
	// links also attach to specifications that were already present.
	specs, err := store.FindAll(ctx, repository.CollectionSpecifications)
	if err != nil {
		logger.Error("Reading specifications back failed", zap.Error(err))
		return nil, fmt.Errorf("failed to seed applications")
	}
	nameToID := make(map[string]string, len(specs))
	for _, spec := range specs {
		if name, ok := spec["deviceName"].(string); ok {
			nameToID[name] = spec.ID()
		}
	}

	// The legacy initializer always rebuilt the links collection.
	if _, err := store.DeleteAll(ctx, repository.CollectionApplications); err != nil {
		logger.Error("Clearing application links failed", zap.Error(err))
		return nil, fmt.Errorf("failed to seed applications")
	}

	for _, app := range apps {
		id, ok := nameToID[app.DeviceName]
		if !ok {
			logger.Warn("No device id found for application link", zap.String("device", app.DeviceName))
			continue
		}
		entries := make([]domain.Document, 0, len(app.Applications))
		for _, name := range app.Applications {
			entries = append(entries, domain.NewApplicationEntry(name))
		}
		link := domain.Document{
			"device_id":    id,
			"deviceName":   app.DeviceName, // kept for reference, like the historical imports
			"applications": entries,
		}
		if _, err := store.InsertOne(ctx, repository.CollectionApplications, link); err != nil {
			logger.Error("Seeding application link failed", zap.String("device", app.DeviceName), zap.Error(err))
			return nil, fmt.Errorf("failed to seed applications")
		}
		logger.Info("Application link seeded",
			zap.String("device", app.DeviceName),
			zap.String("device_id", id),
			zap.Int("applications", len(entries)),
		)
		res.Links++
	}

	return res, nil
}

// applicationSeeds resolves the application lists to seed: the optional
// JSON file when given, the fixture lists otherwise.
func applicationSeeds(path string) ([]applicationSeed, error) {
	if path == "" {
		devices := Devices()
		out := make([]applicationSeed, 0, len(devices))
		for _, d := range devices {
			out = append(out, applicationSeed{DeviceName: d.Name, Applications: d.Applications})
		}
		return out, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read applications file: %w", err)
	}
	var out []applicationSeed
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to parse applications file: %w", err)
	}
	return out, nil
}
