package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Kaiwei0323/web-steve/internal/domain"
	"github.com/Kaiwei0323/web-steve/internal/seed"
)

// MockDeviceService serves the built-in fixture with simulated liveness.
// The frontend was developed against this endpoint before the store
// existed, and still uses it as a connectivity baseline. Each instance
// owns its fixture copy; performance drift accumulates across requests.
type MockDeviceService struct {
	mu      sync.Mutex
	devices []domain.Document
}

func NewMockDeviceService() *MockDeviceService {
	fixture := seed.Devices()
	devices := make([]domain.Document, 0, len(fixture))
	for _, d := range fixture {
		devices = append(devices, d.View())
	}
	return &MockDeviceService{devices: devices}
}

// Devices returns the fixture list. Enabled devices get a fresh lastSeen
// and a performance nudge of at most ±5, clamped to [0, 100]; disabled
// devices are reported exactly as seeded.
func (m *MockDeviceService) Devices() []domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, device := range m.devices {
		if device["status"] != domain.StatusEnabled {
			continue
		}
		minutes := time.Duration(rand.Intn(30)+1) * time.Minute
		device["lastSeen"] = now.Add(-minutes).Format(time.RFC3339)

		perf, _ := device["performance"].(int)
		perf += rand.Intn(11) - 5
		if perf < 0 {
			perf = 0
		}
		if perf > 100 {
			perf = 100
		}
		device["performance"] = perf
	}

	out := make([]domain.Document, 0, len(m.devices))
	for _, device := range m.devices {
		out = append(out, device.Clone())
	}
	return out
}
