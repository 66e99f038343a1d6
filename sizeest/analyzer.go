package sizeest

import (
	"fmt"
	"math"
	"slices"
)

// Observation is one recorded (resolution, encoded payload size) sample,
// e.g. gathered from production blob.BlobCodec.Encode calls.
type Observation struct {
	ResolutionMinutes int
	PayloadBytes      int
}

// Fit fits hyperbolic, logarithmic, and power models to observations and
// returns all three ranked by R², best first. It requires at least two
// distinct observations.
func Fit(observations []Observation) (*Result, error) {
	if len(observations) < 2 {
		return nil, fmt.Errorf("sizeest: need at least 2 observations, got %d", len(observations))
	}

	x := make([]float64, len(observations))
	y := make([]float64, len(observations))

	for i, o := range observations {
		if o.ResolutionMinutes <= 0 {
			return nil, fmt.Errorf("sizeest: observation %d has non-positive resolution %d", i, o.ResolutionMinutes)
		}

		x[i] = float64(o.ResolutionMinutes)
		y[i] = float64(o.PayloadBytes)
	}

	models := []*Model{
		fitHyperbolic(x, y),
		fitLogarithmic(x, y),
		fitPower(x, y),
	}

	slices.SortFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Result{BestFit: models[0], AllModels: models}, nil
}

func fitHyperbolic(x, y []float64) *Model {
	a, b := fitLinearized(x, y, func(xi float64) float64 { return 1 / xi }, identity)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b/x[i]
	}

	return &Model{
		Type:      ModelHyperbolic,
		A:         a,
		B:         b,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Estimator: HyperbolicEstimator{A: a, B: b},
	}
}

func fitLogarithmic(x, y []float64) *Model {
	a, b := fitLinearized(x, y, math.Log, identity)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b*math.Log(x[i])
	}

	return &Model{
		Type:      ModelLogarithmic,
		A:         a,
		B:         b,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Estimator: LogarithmicEstimator{A: a, B: b},
	}
}

func fitPower(x, y []float64) *Model {
	logA, b := fitLinearized(x, y, math.Log, math.Log)
	a := math.Exp(logA)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a * math.Pow(x[i], b)
	}

	return &Model{
		Type:      ModelPower,
		A:         a,
		B:         b,
		RSquared:  rSquared(y, predicted),
		RMSE:      rmse(y, predicted),
		Estimator: PowerEstimator{A: a, B: b},
	}
}

func identity(v float64) float64 { return v }

// fitLinearized performs ordinary least squares on transform(x) vs
// ytransform(y), returning the fitted intercept and slope. Every candidate
// model here reduces to a linear fit after transforming one or both axes.
func fitLinearized(x, y []float64, xform, yform func(float64) float64) (a, b float64) {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		xi := xform(x[i])
		yi := yform(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / n
	meanY := sumY / n

	b = (sumXY - n*meanX*meanY) / (sumX2 - n*meanX*meanX)
	a = meanY - b*meanX

	return a, b
}

func rSquared(observed, predicted []float64) float64 {
	mean := meanOf(observed)

	var ssTot, ssRes float64
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}

func rmse(observed, predicted []float64) float64 {
	var sumSq float64
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
