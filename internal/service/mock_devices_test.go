package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

func TestMockDevicesReturnsFixture(t *testing.T) {
	svc := NewMockDeviceService()

	devices := svc.Devices()
	require.Len(t, devices, 4)

	byName := make(map[string]domain.Document, len(devices))
	for _, d := range devices {
		name, ok := d["name"].(string)
		require.True(t, ok)
		byName[name] = d
	}

	ncox := byName["NCOX"]
	require.NotNil(t, ncox)
	assert.Equal(t, "device-67f4044ea91332165a91a8ab", ncox["id"])
	assert.Equal(t, "NCOX", ncox["model"])
	assert.Equal(t, domain.DeviceType, ncox["type"])
	assert.Equal(t, domain.StatusDisabled, ncox["status"])
	assert.Equal(t, "Best Seller", ncox["tag"])

	specs, ok := ncox["specs"].(map[string]any)
	require.True(t, ok, "specs should decode as a map, got %T", ncox["specs"])
	assert.Equal(t, "NVIDIA Jetson Orin NX", specs["processor"])

	ncon := byName["NCON"]
	require.NotNil(t, ncon)
	assert.NotContains(t, ncon, "tag", "untagged devices have no tag key")
}

func TestMockDevicesDriftStaysInRange(t *testing.T) {
	svc := NewMockDeviceService()

	for i := 0; i < 50; i++ {
		for _, device := range svc.Devices() {
			perf, ok := device["performance"].(float64)
			require.True(t, ok, "performance should decode as a number, got %T", device["performance"])

			if device["status"] == domain.StatusEnabled {
				assert.GreaterOrEqual(t, perf, float64(0))
				assert.LessOrEqual(t, perf, float64(100))
				assertRecentTimestamp(t, device["lastSeen"])
			} else {
				assert.Equal(t, float64(16), perf, "disabled devices never drift")
			}
		}
	}
}

func TestMockDevicesDisabledLastSeenIsStable(t *testing.T) {
	svc := NewMockDeviceService()

	first := svc.Devices()
	time.Sleep(10 * time.Millisecond)
	second := svc.Devices()

	firstSeen := map[string]any{}
	for _, d := range first {
		if d["status"] == domain.StatusDisabled {
			firstSeen[d["name"].(string)] = d["lastSeen"]
		}
	}
	require.NotEmpty(t, firstSeen)
	for _, d := range second {
		if d["status"] == domain.StatusDisabled {
			assert.Equal(t, firstSeen[d["name"].(string)], d["lastSeen"])
		}
	}
}

func TestMockDevicesCallersAreIsolated(t *testing.T) {
	svc := NewMockDeviceService()

	devices := svc.Devices()
	devices[0]["name"] = "tampered"
	devices[0]["performance"] = float64(999)

	again := svc.Devices()
	for _, d := range again {
		assert.NotEqual(t, "tampered", d["name"])
		perf, ok := d["performance"].(float64)
		require.True(t, ok)
		assert.LessOrEqual(t, perf, float64(100))
	}
}
