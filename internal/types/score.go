// Package types provides the records exchanged between the demo server's views, API and state store.
package types

import "time"

// RiskLevel is the coarse three-bucket classification of a blended score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid reports whether r is one of the three known levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// CreditScore is the derived score record. Its JSON layout is also the
// persisted layout of the creditScore state key.
type CreditScore struct {
	BlendedScore int       `json:"blendedScore"`
	FicoScore    int       `json:"ficoScore"`
	EmpowrScore  int       `json:"empowrScore"`
	RiskLevel    RiskLevel `json:"riskLevel"`
	LastUpdated  time.Time `json:"lastUpdated"`
}
