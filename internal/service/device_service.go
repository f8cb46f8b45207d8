package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/domain"
	"github.com/Kaiwei0323/web-steve/internal/repository"
)

// ErrDeviceNotFound signals that no specification matches the requested
// identifier. Handlers translate it into a 404.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceService produces canonical device views for the API boundary.
// Every call re-queries the store; nothing is cached in between.
type DeviceService interface {
	// ListDevices returns the canonical view of every stored device, in
	// the store's natural order.
	ListDevices(ctx context.Context) ([]domain.Document, error)
	// GetDevice returns the canonical view of one device, or
	// ErrDeviceNotFound.
	GetDevice(ctx context.Context, id string) (domain.Document, error)
	// GetApplications returns the application entries for one device.
	// Devices without a stored link get a default set picked by device
	// class; unknown identifiers get an empty list.
	GetApplications(ctx context.Context, id string) ([]domain.Document, error)
}

type deviceService struct {
	store  repository.DocumentStore
	logger *zap.Logger
}

// NewDeviceService creates a DeviceService over a document store.
func NewDeviceService(store repository.DocumentStore, logger *zap.Logger) DeviceService {
	return &deviceService{
		store:  store,
		logger: logger,
	}
}

func (s *deviceService) ListDevices(ctx context.Context) ([]domain.Document, error) {
	specs, err := s.store.FindAll(ctx, repository.CollectionSpecifications)
	if err != nil {
		s.logger.Error("ListDevices failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch devices")
	}

	views := make([]domain.Document, 0, len(specs))
	for _, spec := range specs {
		link, err := s.findLink(ctx, spec.ID())
		if err != nil {
			s.logger.Error("ListDevices failed",
				zap.String("device_id", spec.ID()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to fetch devices")
		}
		views = append(views, s.view(spec, link))
	}
	return views, nil
}

func (s *deviceService) GetDevice(ctx context.Context, id string) (domain.Document, error) {
	spec, err := s.store.FindOne(ctx, repository.CollectionSpecifications, domain.Document{"_id": id})
	if err != nil {
		s.logger.Error("GetDevice failed", zap.String("device_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch device")
	}
	if spec == nil {
		s.logger.Warn("Device not found", zap.String("device_id", id))
		return nil, ErrDeviceNotFound
	}

	link, err := s.findLink(ctx, spec.ID())
	if err != nil {
		s.logger.Error("GetDevice failed", zap.String("device_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch device")
	}
	return s.view(spec, link), nil
}

func (s *deviceService) GetApplications(ctx context.Context, id string) ([]domain.Document, error) {
	link, err := s.findLink(ctx, id)
	if err != nil {
		s.logger.Error("GetApplications failed", zap.String("device_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch applications")
	}
	if link != nil {
		if entries := applicationEntries(link); entries != nil {
			return entries, nil
		}
	}

	// No usable link: fall back to the default set for the device class,
	// or an empty list when the device itself is unknown.
	spec, err := s.store.FindOne(ctx, repository.CollectionSpecifications, domain.Document{"_id": id})
	if err != nil {
		s.logger.Error("GetApplications failed", zap.String("device_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch applications")
	}
	if spec == nil {
		s.logger.Debug("No applications found for device", zap.String("device_id", id))
		return []domain.Document{}, nil
	}

	name, _ := spec["deviceName"].(string)
	names := domain.DefaultApplicationNames(name)
	entries := make([]domain.Document, 0, len(names))
	for _, n := range names {
		entries = append(entries, domain.NewApplicationEntry(n))
	}
	return entries, nil
}

func (s *deviceService) findLink(ctx context.Context, deviceID string) (domain.Document, error) {
	return s.store.FindOne(ctx, repository.CollectionApplications, domain.Document{"device_id": deviceID})
}

// view normalizes one specification and stamps the liveness field the
// frontend renders.
func (s *deviceService) view(spec, link domain.Document) domain.Document {
	view := domain.Normalize(spec, link)
	view["lastSeen"] = recentTimestamp()
	return view
}

// applicationEntries returns the stored entries of a link document, or
// nil when the link has no applications field to serve.
func applicationEntries(link domain.Document) []domain.Document {
	raw, ok := link["applications"].([]any)
	if !ok {
		return nil
	}
	entries := make([]domain.Document, 0, len(raw))
	for _, e := range raw {
		switch entry := e.(type) {
		case map[string]any:
			entries = append(entries, domain.Document(entry))
		case domain.Document:
			entries = append(entries, entry)
		case string:
			// Bare names from early imports are upgraded through the
			// catalog so every entry has the same shape.
			entries = append(entries, domain.NewApplicationEntry(entry))
		}
	}
	return entries
}

// recentTimestamp simulates device liveness the way the frontend expects:
// somewhere within the last half hour.
func recentTimestamp() string {
	minutes := time.Duration(rand.Intn(30)+1) * time.Minute
	return time.Now().Add(-minutes).Format(time.RFC3339)
}
