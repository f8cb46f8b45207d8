package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Kaiwei0323/web-steve/internal/service"
)

// DeviceHandler serves the device API consumed by the frontend.
type DeviceHandler struct {
	devices service.DeviceService
	mock    *service.MockDeviceService
	logger  *zap.Logger
}

func NewDeviceHandler(devices service.DeviceService, mock *service.MockDeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		devices: devices,
		mock:    mock,
		logger:  logger,
	}
}

// Test confirms the API is reachable.
func (h *DeviceHandler) Test(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "API is working correctly",
	})
}

// MockDevices returns the built-in fixture with simulated liveness.
func (h *DeviceHandler) MockDevices(w http.ResponseWriter, _ *http.Request) {
	devices := h.mock.Devices()
	h.logger.Debug("Returning mock devices", zap.Int("count", len(devices)))
	writeJSON(w, http.StatusOK, devices)
}

// StoreDevices returns the canonical view of every stored device.
func (h *DeviceHandler) StoreDevices(w http.ResponseWriter, r *http.Request) {
	views, err := h.devices.ListDevices(r.Context())
	if err != nil {
		failJSON(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// DevicesWithTags serves the same canonical listing under the historical
// tag-focused route; the frontend calls both.
func (h *DeviceHandler) DevicesWithTags(w http.ResponseWriter, r *http.Request) {
	views, err := h.devices.ListDevices(r.Context())
	if err != nil {
		failJSON(w, http.StatusInternalServerError, "Failed to fetch devices with tags")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Specifications returns one canonical device view by identifier.
func (h *DeviceHandler) Specifications(w http.ResponseWriter, r *http.Request, id string) {
	view, err := h.devices.GetDevice(r.Context(), id)
	if errors.Is(err, service.ErrDeviceNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Specifications not found"})
		return
	}
	if err != nil {
		failJSON(w, http.StatusInternalServerError, "Failed to fetch specifications")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Applications returns the application entries for one device.
func (h *DeviceHandler) Applications(w http.ResponseWriter, r *http.Request, id string) {
	entries, err := h.devices.GetApplications(r.Context(), id)
	if err != nil {
		failJSON(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": entries})
}

// Export streams the specification table as a spreadsheet attachment.
func (h *DeviceHandler) Export(w http.ResponseWriter, r *http.Request) {
	views, err := h.devices.ListDevices(r.Context())
	if err != nil {
		failJSON(w, http.StatusInternalServerError, "Failed to export devices")
		return
	}
	data, err := GenerateSpecificationsExport(views)
	if err != nil {
		h.logger.Error("Export generation failed", zap.Error(err))
		failJSON(w, http.StatusInternalServerError, "Failed to export devices")
		return
	}

	filename := fmt.Sprintf("device_specifications_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
