package engine

import (
	"math"

	"fiscalsim/domain/policy"
	"fiscalsim/internal/safety"
)

// Ramp curves map elapsed years since a policy's start onto a completion
// fraction in [0, 1], modeling phased rollout. rampYears == 0 means the
// mechanism takes full effect immediately, with no division performed.

// sigmoidDomain spans the logistic curve over [-6, 6]: progress starts near
// zero, accelerates through the midpoint, and approaches 1. Models gradual
// bureaucratic and behavioral adoption more realistically than linear.
const sigmoidDomain = 6.0

// progress dispatches on the curve shape. Unrecognized shapes fall back to
// linear. Output is always in [0, 1] for yearsSinceStart >= 0.
func progress(g *safety.Guard, curve policy.CurveShape, yearsSinceStart, rampYears int) float64 {
	if rampYears <= 0 {
		return 1.0
	}
	if yearsSinceStart < 0 {
		yearsSinceStart = 0
	}
	switch curve {
	case policy.CurveSigmoid:
		return sigmoidProgress(g, yearsSinceStart, rampYears)
	default:
		return linearProgress(g, yearsSinceStart, rampYears)
	}
}

func linearProgress(g *safety.Guard, yearsSinceStart, rampYears int) float64 {
	frac := g.SafeDivide(float64(yearsSinceStart), float64(rampYears), 1.0, "ramp.linear")
	return math.Min(frac, 1.0)
}

func sigmoidProgress(g *safety.Guard, yearsSinceStart, rampYears int) float64 {
	frac := g.SafeDivide(float64(yearsSinceStart), float64(rampYears), 1.0, "ramp.sigmoid")
	frac = math.Min(frac, 1.0)
	z := 2*sigmoidDomain*frac - sigmoidDomain
	p := 1.0 / (1.0 + math.Exp(-z))
	return math.Max(0, math.Min(p, 1))
}
