package models

import (
	"github.com/driftlab/genograph/internal/constants"
)

// ThreatLevel classifies how dangerous a strain's current resistance is.
type ThreatLevel string

const (
	ThreatSafe      ThreatLevel = "SAFE"
	ThreatMonitored ThreatLevel = "MONITORED"
	ThreatCritical  ThreatLevel = "CRITICAL"
	ThreatPandemic  ThreatLevel = "PANDEMIC"
)

// ClassifyResistance maps a resistance score to a threat level.
// PANDEMIC is never produced here; it is an escalation applied by the
// governor when multiple strains have gone critical.
func ClassifyResistance(score float64) ThreatLevel {
	switch {
	case score > constants.CriticalResistanceThreshold:
		return ThreatCritical
	case score > constants.MonitoredResistanceThreshold:
		return ThreatMonitored
	default:
		return ThreatSafe
	}
}

// Severity returns an ordinal for comparing threat levels (higher is worse).
func (t ThreatLevel) Severity() int {
	switch t {
	case ThreatMonitored:
		return 1
	case ThreatCritical:
		return 2
	case ThreatPandemic:
		return 3
	default:
		return 0
	}
}
