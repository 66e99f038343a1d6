package sizeest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFit_HyperbolicShapedDataPicksHyperbolic(t *testing.T) {
	// True relation: bytes = 50 + 6000/resolution, i.e. finer resolution (smaller
	// minutes) costs more bytes, exactly the hyperbolic family's shape.
	observations := []Observation{
		{ResolutionMinutes: 1, PayloadBytes: 6050},
		{ResolutionMinutes: 5, PayloadBytes: 1250},
		{ResolutionMinutes: 15, PayloadBytes: 450},
		{ResolutionMinutes: 30, PayloadBytes: 250},
		{ResolutionMinutes: 60, PayloadBytes: 150},
	}

	result, err := Fit(observations)
	require.NoError(t, err)
	require.Equal(t, ModelHyperbolic, result.BestFit.Type)
	require.Greater(t, result.BestFit.RSquared, 0.999)
	require.Len(t, result.AllModels, 3)
}

func TestFit_TooFewObservations(t *testing.T) {
	_, err := Fit([]Observation{{ResolutionMinutes: 5, PayloadBytes: 100}})
	require.Error(t, err)
}

func TestFit_NonPositiveResolutionFails(t *testing.T) {
	_, err := Fit([]Observation{
		{ResolutionMinutes: 0, PayloadBytes: 100},
		{ResolutionMinutes: 5, PayloadBytes: 200},
	})
	require.Error(t, err)
}

func TestModel_EstimatorMatchesFormula(t *testing.T) {
	observations := []Observation{
		{ResolutionMinutes: 1, PayloadBytes: 6050},
		{ResolutionMinutes: 5, PayloadBytes: 1250},
		{ResolutionMinutes: 15, PayloadBytes: 450},
		{ResolutionMinutes: 30, PayloadBytes: 250},
		{ResolutionMinutes: 60, PayloadBytes: 150},
	}

	result, err := Fit(observations)
	require.NoError(t, err)

	est := result.BestFit.Estimator.Estimate(15)
	require.InDelta(t, 450, est, 50)
}

func TestModelType_String(t *testing.T) {
	require.Equal(t, "hyperbolic", ModelHyperbolic.String())
	require.Equal(t, "logarithmic", ModelLogarithmic.String())
	require.Equal(t, "power", ModelPower.String())
	require.Equal(t, "unknown", ModelType(99).String())
}

func TestAllModels_RankedByRSquaredDescending(t *testing.T) {
	observations := []Observation{
		{ResolutionMinutes: 1, PayloadBytes: 6050},
		{ResolutionMinutes: 5, PayloadBytes: 1250},
		{ResolutionMinutes: 15, PayloadBytes: 450},
		{ResolutionMinutes: 30, PayloadBytes: 250},
		{ResolutionMinutes: 60, PayloadBytes: 150},
	}

	result, err := Fit(observations)
	require.NoError(t, err)

	for i := 1; i < len(result.AllModels); i++ {
		require.GreaterOrEqual(t, result.AllModels[i-1].RSquared, result.AllModels[i].RSquared)
	}
}
