package domain

import "strings"

// Application catalog carried over from the legacy import tooling: every
// known application name maps to a category and a marketing description.
var applicationTypes = map[string]string{
	"Smart Surveillance":                 "surveillance",
	"Industrial Quality Inspection":      "industrial",
	"Building Monitoring and Management": "building",
	"Optimize Energy Usage":              "energy",
	"Urban Infrastructure Management":    "infrastructure",
	"Manufacturing Optimization":         "manufacturing",
	"Predictive Maintenance":             "maintenance",
	"Retail Analytics":                   "retail",
	"Traffic Violation Detection":        "traffic",
	"Customer Behavior Analytics":        "retail",
	"Autonomous Mobile Robot (AMR)":      "robotics",
	"Real-Time Navigation":               "navigation",
	"Automation Efficiency":              "automation",
	"Fleet Management":                   "fleet",
	"Autonomous Driving":                 "automotive",
	"Healthcare and Medical":             "healthcare",
	"Industrial Automation":              "industrial",
	"Real-Time AI Computation":           "computation",
}

var applicationDescriptions = map[string]string{
	"Smart Surveillance":                 "Advanced video analytics for security monitoring",
	"Industrial Quality Inspection":      "AI-powered manufacturing quality control",
	"Building Monitoring and Management": "Intelligent building systems and security",
	"Optimize Energy Usage":              "Smart energy management and optimization",
	"Urban Infrastructure Management":    "City infrastructure monitoring and control",
	"Manufacturing Optimization":         "Enhanced manufacturing process control",
	"Predictive Maintenance":             "AI-driven equipment maintenance prediction",
	"Retail Analytics":                   "Customer behavior and retail performance analysis",
	"Traffic Violation Detection":        "Automated traffic monitoring and enforcement",
	"Customer Behavior Analytics":        "In-depth analysis of customer patterns and behaviors",
	"Autonomous Mobile Robot (AMR)":      "Self-navigating robots for industrial applications",
	"Real-Time Navigation":               "Dynamic path planning and obstacle avoidance",
	"Automation Efficiency":              "Optimized automation systems for improved productivity",
	"Fleet Management":                   "Real-time vehicle tracking and logistics optimization",
	"Autonomous Driving":                 "Self-driving vehicle control and navigation",
	"Healthcare and Medical":             "Medical imaging and healthcare process automation",
	"Industrial Automation":              "Advanced industrial process automation",
	"Real-Time AI Computation":           "High-performance AI processing at the edge",
}

// Default application sets returned when a device has no stored link.
var (
	serverDefaultApplications = []string{
		"High-Performance Computing",
		"Data Center Operations",
		"Cloud Services",
		"Enterprise AI Solutions",
	}
	edgeDefaultApplications = []string{
		"Smart Surveillance",
		"Industrial Quality Inspection",
		"Edge Computing",
	}
)

// ApplicationType returns the category for an application name; unknown
// names fall into "other".
func ApplicationType(name string) string {
	if t, ok := applicationTypes[name]; ok {
		return t
	}
	return "other"
}

// ApplicationDescription returns the description for an application name;
// unknown names get a generic one.
func ApplicationDescription(name string) string {
	if d, ok := applicationDescriptions[name]; ok {
		return d
	}
	return "Advanced AI-powered application"
}

// NewApplicationEntry builds the full stored entry for an application
// name, resolving type and description through the catalog.
func NewApplicationEntry(name string) Document {
	return Document{
		"name":        name,
		"type":        ApplicationType(name),
		"description": ApplicationDescription(name),
	}
}

// DefaultApplicationNames picks the fallback application set for a device
// without a stored link. Server-class devices are recognized purely by a
// name substring; no device in the current catalog matches, so revisit
// this check once real server SKUs land in the store.
func DefaultApplicationNames(deviceName string) []string {
	if strings.Contains(deviceName, "Server") {
		return append([]string(nil), serverDefaultApplications...)
	}
	return append([]string(nil), edgeDefaultApplications...)
}
