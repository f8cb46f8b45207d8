package seed

import (
	"fmt"
	"time"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// MockDevice is one entry of the built-in device fixture. The four
// devices mirror the catalog the frontend was developed against.
type MockDevice struct {
	ID           string
	Name         string
	Status       string
	LastSeenAge  time.Duration
	Performance  int
	Tag          string
	Specs        map[string]string
	Applications []string
}

// Devices returns a fresh copy of the fixture so callers can mutate
// their own instance without affecting anyone else.
func Devices() []MockDevice {
	return []MockDevice{
		{
			ID:          "device-67f4044ea91332165a91a8ab",
			Name:        "NCOX",
			Status:      domain.StatusDisabled,
			LastSeenAge: 5 * time.Minute,
			Performance: 16,
			Tag:         "Best Seller",
			Specs: map[string]string{
				"processor":             "NVIDIA Jetson Orin NX",
				"memory":                "16GB/8GB LPDDR5",
				"storage":               "External NVMe via x4 PCIe",
				"operating_system":      "Linux 5.10/ Ubuntu 20.04",
				"networking":            "RJ45 1 x Gigabit Ethernet",
				"io_interfaces":         "1 x USB 2.0 Micro-B",
				"dimensions":            "90(W) x 118(D) x 69(H) mm",
				"weight":                "650g",
				"power_input":           "1 x DC-In 12~19V",
				"operating_temperature": "-20 ~ 60°C",
			},
			Applications: []string{
				"Smart Surveillance",
				"Industrial Quality Inspection",
			},
		},
		{
			ID:          "device-67f4044ea91332165a91a8ac",
			Name:        "NCON",
			Status:      domain.StatusEnabled,
			LastSeenAge: 15 * time.Minute,
			Performance: 8,
			Specs: map[string]string{
				"processor":             "NVIDIA Jetson Orin Nano",
				"memory":                "8GB/4GB LPDDR5",
				"storage":               "External NVMe via x4 PCIe",
				"operating_system":      "Linux 5.10/ Ubuntu 20.04",
				"networking":            "RJ45 1 x Gigabit Ethernet",
				"io_interfaces":         "1 x USB 2.0 Micro-B",
				"dimensions":            "90(W) x 118(D) x 69(H) mm",
				"weight":                "750g",
				"power_input":           "1 x DC-In 12~19V",
				"operating_temperature": "-20 ~ 60°C",
			},
			Applications: []string{
				"Building Monitoring and Management",
				"Optimize Energy Usage",
				"Urban Infrastructure Management",
			},
		},
		{
			ID:          "device-67f4044ea91332165a91a8ae",
			Name:        "PSON",
			Status:      domain.StatusEnabled,
			LastSeenAge: time.Hour,
			Performance: 8,
			Specs: map[string]string{
				"processor":             "NVIDIA Jetson Orin Nano",
				"memory":                "8GB/4GB LPDDR5",
				"storage":               "External NVMe via x4 PCIe",
				"operating_system":      "Linux 5.10/ Ubuntu 20.04",
				"networking":            "RJ45 2 x Gigabit Ethernet",
				"io_interfaces":         "1 x USB 2.0 Micro-B",
				"dimensions":            "94(W) x 157(L) x 77.75 (H) mm",
				"weight":                "888g",
				"power_input":           "1 x DC-In 12~19V",
				"operating_temperature": "-20 ~ 60°C",
			},
			Applications: []string{
				"Industrial Quality Inspection",
				"Manufacturing Optimization",
				"Predictive Maintenance",
			},
		},
		{
			ID:          "device-67f4044ea91332165a91a8af",
			Name:        "PSOX",
			Status:      domain.StatusDisabled,
			LastSeenAge: 2 * time.Hour,
			Performance: 16,
			Specs: map[string]string{
				"processor":             "NVIDIA Jetson Orin NX",
				"memory":                "16GB/8GB LPDDR5",
				"storage":               "External NVMe via x4 PCIe",
				"operating_system":      "Linux 5.10/ Ubuntu 20.04",
				"networking":            "RJ45 2 x Gigabit Ethernet",
				"io_interfaces":         "1 x USB 2.0 Micro-B",
				"dimensions":            "94(W) x 157(L) x 77.75 (H) mm",
				"weight":                "888g",
				"power_input":           "1 x DC-In 12~19V",
				"operating_temperature": "-20 ~ 60°C",
			},
			Applications: []string{
				"Smart Surveillance",
				"Industrial Quality Inspection",
				"Retail Analytics",
				"Traffic Violation Detection",
			},
		},
	}
}

// View renders the fixture entry in the shape the mock listing endpoint
// serves: the canonical client fields plus the nested specs map. The tag
// key is only present on tagged devices, matching the historical payload.
func (d MockDevice) View() domain.Document {
	view := domain.Document{
		"id":          d.ID,
		"name":        d.Name,
		"model":       d.Name,
		"type":        domain.DeviceType,
		"status":      d.Status,
		"lastSeen":    time.Now().Add(-d.LastSeenAge).Format(time.RFC3339),
		"performance": d.Performance,
		"specs":       d.specsCopy(),
	}
	if d.Tag != "" {
		view["tag"] = d.Tag
	}
	view["applications"] = append([]string(nil), d.Applications...)
	return view
}

// LegacyDocument renders the fixture entry in the shape the historical
// imports used, so seeded stores look exactly like production data.
func (d MockDevice) LegacyDocument() domain.Document {
	doc := domain.Document{
		"deviceName":     d.Name,
		"Category":       "Specification",
		"Processor":      d.Specs["processor"],
		"AI Performance": fmt.Sprintf("%d TOPS", d.Performance),
		"Memory":         d.Specs["memory"],
		"Storage":        d.Specs["storage"],
		"OS":             d.Specs["operating_system"],
		"Ethernet":       d.Specs["networking"],
		"I/O":            d.Specs["io_interfaces"],
		"Dimension":      d.Specs["dimensions"],
		"Weight":         d.Specs["weight"],
		"Power":          d.Specs["power_input"],
		// The key is misspelled in every existing import; readers match
		// it verbatim, so the seeder has to keep it that way.
		"Operating Tempeture": d.Specs["operating_temperature"],
		"Super Mode":          superModeFor(d.Status),
		"status":              d.Status,
		"lastSeen":            time.Now().Add(-d.LastSeenAge).Format(time.RFC3339),
		"applications":        append([]string(nil), d.Applications...),
	}
	if d.Tag != "" {
		doc["tag"] = d.Tag
	} else {
		doc["tag"] = nil
	}
	return doc
}

func (d MockDevice) specsCopy() map[string]string {
	out := make(map[string]string, len(d.Specs))
	for k, v := range d.Specs {
		out[k] = v
	}
	return out
}

// superModeFor maps a fixture status back to the spreadsheet literal the
// stored records use.
func superModeFor(status string) string {
	if status == domain.StatusEnabled {
		return "Enable"
	}
	return "Disable"
}
