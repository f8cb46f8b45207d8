package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DeviceType is the only device class served by this inventory.
const DeviceType = "ai_edge"

// Status values derived from the legacy "Super Mode" field.
const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"

	formattedStatusEnabled  = "Super Mode: Enabled"
	formattedStatusDisabled = "Super Mode: Disabled"
)

// Performance extraction patterns, tried in order. "Up to 16 TOPS" must
// resolve through the first pattern even when the text contains other
// numbers, so the order is load-bearing.
var (
	upToPattern  = regexp.MustCompile(`(?i)up to (\d+)(?:\s*tops)?`)
	topsPattern  = regexp.MustCompile(`(?i)(\d+)\s*tops`)
	digitPattern = regexp.MustCompile(`\d+`)
)

// Normalize maps one raw specification document plus its optional
// application link into the canonical device view served to clients.
// Raw fields pass through; the canonical fields are always present and
// always well-typed, whatever shape the stored record is in. It never
// fails: malformed or missing fields resolve to documented defaults.
func Normalize(spec Document, link Document) Document {
	view := make(Document, len(spec)+8)
	for k, v := range spec {
		view[k] = v
	}

	id := spec.ID()
	delete(view, "_id")
	view["id"] = id

	name, hasName := spec["deviceName"].(string)
	if !hasName {
		name = fmt.Sprintf("Unknown Device (%s)", id)
		view["deviceName"] = name
	}
	view["name"] = name
	view["formattedName"] = name
	if hasName {
		view["model"] = name
	} else {
		view["model"] = ""
	}

	view["type"] = DeviceType

	status, formatted := StatusFromSuperMode(spec["Super Mode"])
	view["status"] = status
	view["formatted_status"] = formatted

	view["performance"] = ExtractPerformance(spec["AI Performance"])

	view["tag"] = TagValue(spec)
	delete(view, "Tag")

	view["applications"] = ApplicationNames(link)

	if _, ok := view["description_summary"]; !ok {
		view["description_summary"] = nil
	}
	if _, ok := view["description"]; !ok {
		view["description"] = nil
	}

	return view
}

// ExtractPerformance derives the numeric TOPS score from the free-text
// "AI Performance" field. Rules, first match wins:
//  1. "Up to N" (optionally followed by "TOPS", any casing) -> N
//  2. "N TOPS" (any casing) -> N
//  3. any digit runs in the text -> the largest one
//  4. a non-string numeric value -> truncated to int
//  5. anything else -> 0
//
// The result is never negative.
func ExtractPerformance(v any) int {
	s, ok := v.(string)
	if !ok {
		return clampPerformance(numericInt(v))
	}

	if m := upToPattern.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := topsPattern.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if runs := digitPattern.FindAllString(s, -1); runs != nil {
		max := 0
		for _, run := range runs {
			if n, err := strconv.Atoi(run); err == nil && n > max {
				max = n
			}
		}
		return max
	}
	return 0
}

func numericInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return 0
}

func clampPerformance(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// TagValue resolves the device tag from its legacy casing variants.
// The lower-case "tag" key wins over "Tag"; a non-empty string value is
// lower-cased, everything else resolves to nil so clients can rely on
// tag being either a displayable string or null.
func TagValue(spec Document) any {
	v, ok := spec["tag"]
	if !ok {
		v, ok = spec["Tag"]
	}
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return strings.ToLower(s)
}

// StatusFromSuperMode derives the device status pair from the legacy
// "Super Mode" field. Only the exact literal "Enable" counts as enabled.
func StatusFromSuperMode(v any) (status, formatted string) {
	if s, ok := v.(string); ok && s == "Enable" {
		return StatusEnabled, formattedStatusEnabled
	}
	return StatusDisabled, formattedStatusDisabled
}

// ApplicationNames extracts the plain application names from a link
// document. Listing views carry names only, never the full entries.
// A nil link or an unreadable applications field yields an empty list.
func ApplicationNames(link Document) []string {
	names := []string{}
	if link == nil {
		return names
	}
	entries, ok := link["applications"].([]any)
	if !ok {
		return names
	}
	for _, e := range entries {
		switch entry := e.(type) {
		case map[string]any:
			if name, ok := entry["name"].(string); ok {
				names = append(names, name)
			}
		case Document:
			if name, ok := entry["name"].(string); ok {
				names = append(names, name)
			}
		case string:
			// Some early imports stored bare name strings.
			names = append(names, entry)
		}
	}
	return names
}
