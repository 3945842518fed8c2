package ports

import (
	"fiscalsim/domain/fiscal"
)

// DiagnosticsSink receives structured warnings from the safety layer and the
// calculators. The core never prescribes a transport; the surrounding
// logging/telemetry/UI layer implements this and decides how to surface
// each severity.
type DiagnosticsSink interface {
	Emit(w fiscal.Warning)
}

// DiagnosticsFunc adapts a function to the DiagnosticsSink interface
type DiagnosticsFunc func(w fiscal.Warning)

func (f DiagnosticsFunc) Emit(w fiscal.Warning) { f(w) }

// NopDiagnostics discards all warnings
func NopDiagnostics() DiagnosticsSink {
	return DiagnosticsFunc(func(fiscal.Warning) {})
}
