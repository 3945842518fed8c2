package fiscal

import (
	"fmt"

	"fiscalsim/domain/core"
)

// Severity grades a diagnostic emitted by the safety layer
type Severity string

const (
	SeverityInfo Severity = "info" // Routine note (e.g. fallback tier used)
	SeverityWarn Severity = "warn" // Input corrected before use
	SeverityUser Severity = "user" // Must be surfaced to end users beside the figure
)

// WarningCode represents structured warning types
type WarningCode string

const (
	WarnDivisionGuard    WarningCode = "DIVISION_GUARD"     // safe divide returned the default
	WarnGDPFloored       WarningCode = "GDP_FLOORED"        // GDP raised to the configured floor
	WarnPopulationFloor  WarningCode = "POPULATION_FLOORED" // Population raised to the floor
	WarnValueClamped     WarningCode = "VALUE_CLAMPED"      // Generic clamp applied
	WarnGrowthCapped     WarningCode = "GROWTH_CAPPED"      // GDP growth outside historical bounds
	WarnExtremeDebt      WarningCode = "EXTREME_DEBT"       // Debt/GDP beyond crisis threshold (flag only)
	WarnExtremeInflation WarningCode = "EXTREME_INFLATION"  // Inflation beyond crisis range (flag only)
	WarnExtremeRate      WarningCode = "EXTREME_RATE"       // Interest rate beyond crisis threshold (flag only)
	WarnDataFallback     WarningCode = "DATA_FALLBACK"      // Reference data resolved from a fallback tier
)

// Warning is one structured diagnostic. The engine never prescribes a
// transport: warnings flow through ports.DiagnosticsSink and the surrounding
// logging/UI layer decides what to do with them.
type Warning struct {
	Severity Severity        `json:"severity"`
	Code     WarningCode     `json:"code"`
	Message  string          `json:"message"`
	Context  string          `json:"context,omitempty"` // call-site tag, e.g. "revenue.payroll"
	Year     core.FiscalYear `json:"year,omitempty"`
}

// NewWarning builds a warning with a formatted message
func NewWarning(sev Severity, code WarningCode, context string, format string, args ...interface{}) Warning {
	return Warning{
		Severity: sev,
		Code:     code,
		Context:  context,
		Message:  fmt.Sprintf(format, args...),
	}
}

// String renders the warning for plain-log transports
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (%s): %s", w.Severity, w.Code, w.Context, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message)
}
