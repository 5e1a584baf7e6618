package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tunegraph/tunegraph/internal/domain"
)

type fakeCatalog struct {
	names    map[string]string
	namesErr error
}

func (f *fakeCatalog) UpsertTrack(ctx context.Context, t domain.Track) error   { return nil }
func (f *fakeCatalog) UpsertArtist(ctx context.Context, a domain.Artist) error { return nil }
func (f *fakeCatalog) GetAllTracks(ctx context.Context) ([]domain.Track, error) {
	return nil, nil
}
func (f *fakeCatalog) GetAllArtists(ctx context.Context) ([]domain.Artist, error) {
	return nil, nil
}
func (f *fakeCatalog) TracksByIDs(ctx context.Context, ids []string) ([]domain.Track, error) {
	return nil, nil
}
func (f *fakeCatalog) TrackNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	return f.names, nil
}
func (f *fakeCatalog) Ping(ctx context.Context) error { return nil }

func TestWithNamesFallsBackToTrackID(t *testing.T) {
	svc := &Service{repo: &fakeCatalog{names: map[string]string{"t1": "Caldera"}}}

	got := svc.withNames(context.Background(), []domain.RankedTrack{
		{TrackID: "t1", Score: 0.1},
		{TrackID: "t2", Score: 0.2},
	})

	require.Len(t, got, 2)
	require.Equal(t, "Caldera", got[0].Name)
	require.Equal(t, "t2", got[1].Name)
}

func TestWithNamesSurvivesLookupFailure(t *testing.T) {
	svc := &Service{repo: &fakeCatalog{namesErr: errors.New("connection refused")}}

	got := svc.withNames(context.Background(), []domain.RankedTrack{
		{TrackID: "t1", Score: 0.1},
		{TrackID: "t2", Score: 0.2},
	})

	require.Len(t, got, 2)
	require.Equal(t, "t1", got[0].Name)
	require.Equal(t, "t2", got[1].Name)
}
