package engine

import (
	"fmt"

	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// EvaluateBreaker scans the rules for the given trigger type against one
// year's metric (a percent of GDP). Rules are checked in declaration order
// and evaluation stops at the first breach. No matching rule, or an empty
// rule list, returns (false, nil).
//
// The evaluator is stateless: whether a breaker fired in a prior year is
// unknown here. Persistent "stays triggered" semantics, if wanted, are the
// simulation driver's to layer on top.
func (e *Engine) EvaluateBreaker(rules []policy.CircuitBreakerRule, trigger policy.TriggerType, metricPct float64) (bool, *fiscal.BreakerEvent) {
	for _, rule := range rules {
		if rule.Trigger != trigger {
			continue
		}
		if metricPct > rule.Threshold {
			ev := &fiscal.BreakerEvent{
				Trigger:   string(rule.Trigger),
				Threshold: rule.Threshold,
				Metric:    metricPct,
				Message:   breakerMessage(rule, metricPct),
			}
			return true, ev
		}
	}
	return false, nil
}

func breakerMessage(rule policy.CircuitBreakerRule, metricPct float64) string {
	var metric string
	switch rule.Trigger {
	case policy.TriggerSpendingCap:
		metric = "spending"
	case policy.TriggerSurplusTrigger:
		metric = "surplus"
	default:
		metric = string(rule.Trigger)
	}
	return fmt.Sprintf("%s at %.2f%% of GDP breached the %.2f%% threshold: %s",
		metric, metricPct, rule.Threshold, rule.Action)
}
