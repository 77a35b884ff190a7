package models

// FaultType is the categorical bucket a numeric reading falls into.
type FaultType string

const (
	FaultVeryLow  FaultType = "Very Low"
	FaultLow      FaultType = "Low"
	FaultNormal   FaultType = "Normal"
	FaultHigh     FaultType = "High"
	FaultVeryHigh FaultType = "Very High"
)

// Severity is the coarser label derived from a FaultType.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityNone     Severity = "None"
)

var faultSeverity = map[FaultType]Severity{
	FaultVeryLow:  SeverityCritical,
	FaultLow:      SeverityWarning,
	FaultNormal:   SeverityNone,
	FaultHigh:     SeverityWarning,
	FaultVeryHigh: SeverityCritical,
}

// SeverityOf returns the severity for a fault bucket. Severity is never
// chosen independently of the bucket.
func SeverityOf(ft FaultType) Severity {
	return faultSeverity[ft]
}
