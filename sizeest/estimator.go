package sizeest

import "math"

// Estimator predicts a payload's size in bytes from a time resolution in
// minutes.
type Estimator interface {
	Estimate(resolutionMinutes float64) float64
}

// HyperbolicEstimator implements PayloadBytes = a + b/resolution.
type HyperbolicEstimator struct {
	A, B float64
}

func (e HyperbolicEstimator) Estimate(resolutionMinutes float64) float64 {
	if resolutionMinutes <= 0 {
		return math.Inf(1)
	}

	return e.A + e.B/resolutionMinutes
}

// LogarithmicEstimator implements PayloadBytes = a + b*ln(resolution).
type LogarithmicEstimator struct {
	A, B float64
}

func (e LogarithmicEstimator) Estimate(resolutionMinutes float64) float64 {
	if resolutionMinutes <= 0 {
		return math.Inf(1)
	}

	return e.A + e.B*math.Log(resolutionMinutes)
}

// PowerEstimator implements PayloadBytes = a * resolution^b.
type PowerEstimator struct {
	A, B float64
}

func (e PowerEstimator) Estimate(resolutionMinutes float64) float64 {
	if resolutionMinutes <= 0 {
		return math.Inf(1)
	}

	return e.A * math.Pow(resolutionMinutes, e.B)
}
