// Package constants provides named constants used throughout the genograph codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

import "time"

// Resistance classification thresholds.
const (
	// CriticalResistanceThreshold is the resistance score above which a strain
	// is classified CRITICAL and containment is triggered.
	CriticalResistanceThreshold = 0.8

	// MonitoredResistanceThreshold is the resistance score above which a strain
	// is classified MONITORED.
	MonitoredResistanceThreshold = 0.4

	// DefaultAlertThreshold is the default governor alert threshold.
	DefaultAlertThreshold = 0.7

	// PandemicStrainCount is the number of distinct CRITICAL strains a governor
	// must observe before escalating further criticals to PANDEMIC.
	PandemicStrainCount = 3
)

// Simulation constants.
const (
	// DefaultStepInterval is the default delay between evolution steps.
	DefaultStepInterval = 1 * time.Second

	// MaxGeneNameLen is the maximum length for a gene display name.
	// Longer names are truncated in rendered output.
	MaxGeneNameLen = 50
)
