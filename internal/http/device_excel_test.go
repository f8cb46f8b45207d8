package httpapi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

func TestGenerateSpecificationsExport(t *testing.T) {
	views := []domain.Document{
		{
			"name":         "NCOX",
			"model":        "NCOX",
			"status":       domain.StatusEnabled,
			"performance":  16,
			"tag":          "best seller",
			"Processor":    "NVIDIA Jetson Orin NX",
			"Memory":       "16GB/8GB LPDDR5",
			"Storage":      "External NVMe via x4 PCIe",
			"OS":           "Linux 5.10/ Ubuntu 20.04",
			"applications": []string{"Smart Surveillance", "Retail Analytics"},
		},
		{
			"name":        "NCON",
			"model":       "NCON",
			"status":      domain.StatusDisabled,
			"performance": 8,
			"tag":         nil,
		},
	}

	data, err := GenerateSpecificationsExport(views)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Device Specifications"
	assert.Contains(t, f.GetSheetList(), sheet)
	assert.NotContains(t, f.GetSheetList(), "Sheet1")

	for col, want := range SpecificationsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "header cell %s", cell)
	}

	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "NCOX", name)

	perf, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "16", perf)

	tag, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "best seller", tag)

	apps, err := f.GetCellValue(sheet, "J2")
	require.NoError(t, err)
	assert.Equal(t, "Smart Surveillance, Retail Analytics", apps)

	tag2, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Empty(t, tag2, "null tags render as blank cells")
}

func TestGenerateSpecificationsExportEmpty(t *testing.T) {
	data, err := GenerateSpecificationsExport(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Device Specifications")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, SpecificationsExportHeader, rows[0])
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "a, b", joinNames([]string{"a", "b"}))
	assert.Equal(t, "a, b", joinNames([]any{"a", "b"}))
	assert.Equal(t, "a", joinNames([]any{"a", 42}))
	assert.Equal(t, "", joinNames(nil))
	assert.Equal(t, "", joinNames("scalar"))
}
