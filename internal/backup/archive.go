package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/domain"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

// Archive dumps every collection into one timestamped zip under dir and
// returns the archive path. Each collection becomes a <name>.json entry.
func Archive(ctx context.Context, store repository.DocumentStore, dir string, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_%s.zip", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(f)
	for _, collection := range repository.Collections {
		docs, err := store.FindAll(ctx, collection)
		if err != nil {
			zw.Close()
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to dump %s: %w", collection, err)
		}

		w, err := zw.Create(collection + ".json")
		if err != nil {
			zw.Close()
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to add %s to archive: %w", collection, err)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			zw.Close()
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to encode %s: %w", collection, err)
		}
		logger.Info("Collection dumped",
			zap.String("collection", collection),
			zap.Int("documents", len(docs)),
		)
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close archive: %w", err)
	}
	return path, nil
}

// ListArchives returns every zip in dir, newest first by modification
// time.
func ListArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup dir: %w", err)
	}

	type archive struct {
		path    string
		modTime time.Time
	}
	archives := []archive{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, archive{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].modTime.After(archives[j].modTime)
	})

	out := make([]string, 0, len(archives))
	for _, a := range archives {
		out = append(out, a.path)
	}
	return out, nil
}

// LatestArchive returns the newest zip in dir.
func LatestArchive(dir string) (string, error) {
	archives, err := ListArchives(dir)
	if err != nil {
		return "", err
	}
	if len(archives) == 0 {
		return "", fmt.Errorf("no backup archives in %s", dir)
	}
	return archives[0], nil
}

// RestoreResult maps collection names to restored document counts.
type RestoreResult map[string]int

// Restore reimports every collection found in the archive, replacing the
// current contents. With dryRun it only reports what would be restored.
func Restore(ctx context.Context, store repository.DocumentStore, archivePath string, dryRun bool, logger *zap.Logger) (RestoreResult, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	result := RestoreResult{}
	for _, file := range zr.File {
		if !strings.HasSuffix(file.Name, ".json") || strings.Contains(file.Name, "/") {
			continue
		}
		collection := strings.TrimSuffix(file.Name, ".json")

		rc, err := file.Open()
		if err != nil {
			return result, fmt.Errorf("failed to open %s in archive: %w", file.Name, err)
		}
		var docs []domain.Document
		err = json.NewDecoder(rc).Decode(&docs)
		rc.Close()
		if err != nil {
			return result, fmt.Errorf("failed to decode %s: %w", file.Name, err)
		}

		if dryRun {
			logger.Info("Would restore collection",
				zap.String("collection", collection),
				zap.Int("documents", len(docs)),
			)
			result[collection] = len(docs)
			continue
		}

		deleted, err := store.DeleteAll(ctx, collection)
		if err != nil {
			return result, fmt.Errorf("failed to clear %s: %w", collection, err)
		}
		logger.Info("Collection cleared",
			zap.String("collection", collection),
			zap.Int64("deleted", deleted),
		)

		for _, doc := range docs {
			if _, err := store.InsertOne(ctx, collection, doc); err != nil {
				return result, fmt.Errorf("failed to restore %s: %w", collection, err)
			}
		}
		result[collection] = len(docs)
		logger.Info("Collection restored",
			zap.String("collection", collection),
			zap.Int("documents", len(docs)),
		)
	}
	return result, nil
}
