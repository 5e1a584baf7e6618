package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tunegraph/tunegraph/internal/domain"
)

func TestDistanceReflexiveAndSymmetric(t *testing.T) {
	e := newTestEngine(t, &fakeStore{})

	a := domain.AudioFeatures{Valence: 0.3, Energy: 0.7, Tempo: 120}
	b := domain.AudioFeatures{Valence: 0.8, Energy: 0.2, Tempo: 90}

	require.Zero(t, e.Distance(a, a))
	require.Zero(t, e.Distance(b, b))
	require.Equal(t, e.Distance(a, b), e.Distance(b, a))
	require.GreaterOrEqual(t, e.Distance(a, b), 0.0)
}

func TestDistanceDefaultDimensions(t *testing.T) {
	e := newTestEngine(t, &fakeStore{})

	a := domain.AudioFeatures{Valence: 0.9, Energy: 0.8, Danceability: 1.0}
	b := domain.AudioFeatures{Valence: 0.1, Energy: 0.1, Danceability: 0.0}

	// Danceability is not in the default dimension set and must not
	// contribute.
	require.InDelta(t, 1.5, e.Distance(a, b), 1e-9)
}

func TestDistanceConfiguredDimensionsAndWeights(t *testing.T) {
	e, err := New(&fakeStore{}, DistanceConfig{
		Dimensions: []string{domain.DimTempo, domain.DimValence},
		Weights:    []float64{0.005},
	})
	require.NoError(t, err)

	a := domain.AudioFeatures{Tempo: 120, Valence: 0.9}
	b := domain.AudioFeatures{Tempo: 100, Valence: 0.4}

	// 0.005*|120-100| + 1.0*|0.9-0.4|
	require.InDelta(t, 0.6, e.Distance(a, b), 1e-9)
}

func TestDistanceMissingDimensionsDefaultToZero(t *testing.T) {
	e := newTestEngine(t, &fakeStore{})

	full := domain.AudioFeatures{Valence: 0.4, Energy: 0.6}
	require.InDelta(t, 1.0, e.Distance(full, domain.AudioFeatures{}), 1e-9)
}

func TestNewRejectsUnknownDimension(t *testing.T) {
	_, err := New(&fakeStore{}, DistanceConfig{Dimensions: []string{"vibes"}})
	require.Error(t, err)
}

func TestNewRejectsExcessWeights(t *testing.T) {
	_, err := New(&fakeStore{}, DistanceConfig{
		Dimensions: []string{domain.DimValence},
		Weights:    []float64{1, 2},
	})
	require.Error(t, err)
}

func TestConfiguredDimensionsChangeRanking(t *testing.T) {
	store := &fakeStore{catalog: map[string]domain.AudioFeatures{
		"seed": {Valence: 0.5, Tempo: 120},
		"a":    {Valence: 0.5, Tempo: 60},
		"b":    {Valence: 0.9, Tempo: 120},
	}}

	byValence := newTestEngine(t, store)
	got, err := byValence.Recommend(context.Background(), []string{"seed"}, 2)
	require.NoError(t, err)
	require.Equal(t, "a", got[0].TrackID)

	byTempo, err := New(store, DistanceConfig{Dimensions: []string{domain.DimTempo}})
	require.NoError(t, err)
	got, err = byTempo.Recommend(context.Background(), []string{"seed"}, 2)
	require.NoError(t, err)
	require.Equal(t, "b", got[0].TrackID)
}
