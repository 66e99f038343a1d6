// Package sizeest estimates a PSP blob's encoded payload size from its time
// resolution, fitted from recorded (resolutionMinutes, payloadBytes)
// observations. It complements the static capacity formula in
// blob.BlobCodec with a regression-based estimate tuned from production
// samples, for callers that want tighter buffer pre-sizing than the
// worst-case heuristic allows.
package sizeest

import "fmt"

// ModelType identifies which regression family a Model was fitted with.
type ModelType int

const (
	// ModelHyperbolic fits PayloadBytes = a + b/Resolution.
	ModelHyperbolic ModelType = iota
	// ModelLogarithmic fits PayloadBytes = a + b*ln(Resolution).
	ModelLogarithmic
	// ModelPower fits PayloadBytes = a * Resolution^b.
	ModelPower
)

func (t ModelType) String() string {
	switch t {
	case ModelHyperbolic:
		return "hyperbolic"
	case ModelLogarithmic:
		return "logarithmic"
	case ModelPower:
		return "power"
	default:
		return "unknown"
	}
}

// Model is one fitted regression curve plus its goodness-of-fit statistics.
type Model struct {
	Type      ModelType
	A, B      float64
	RSquared  float64
	RMSE      float64
	Estimator Estimator
}

func (m *Model) String() string {
	return fmt.Sprintf("Model{%s, a=%.4f, b=%.4f, R²=%.4f, RMSE=%.2f}", m.Type, m.A, m.B, m.RSquared, m.RMSE)
}

// Result is the outcome of fitting all candidate model families to one set
// of observations.
type Result struct {
	// BestFit is the model with the highest R².
	BestFit *Model
	// AllModels holds every candidate, best first.
	AllModels []*Model
}
