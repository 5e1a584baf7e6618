package domain

// AudioFeatures is the fixed-schema numeric profile of a track.
// Dimensions missing from the catalog scan as 0.
type AudioFeatures struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Speechiness      float64 `json:"speechiness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
}

// Dimension names accepted by the distance configuration.
const (
	DimDanceability     = "danceability"
	DimEnergy           = "energy"
	DimSpeechiness      = "speechiness"
	DimAcousticness     = "acousticness"
	DimInstrumentalness = "instrumentalness"
	DimLiveness         = "liveness"
	DimValence          = "valence"
	DimTempo            = "tempo"
	DimLoudness         = "loudness"
)

// Dimension returns the named dimension value, reporting whether the
// name is a known dimension.
func (f AudioFeatures) Dimension(name string) (float64, bool) {
	switch name {
	case DimDanceability:
		return f.Danceability, true
	case DimEnergy:
		return f.Energy, true
	case DimSpeechiness:
		return f.Speechiness, true
	case DimAcousticness:
		return f.Acousticness, true
	case DimInstrumentalness:
		return f.Instrumentalness, true
	case DimLiveness:
		return f.Liveness, true
	case DimValence:
		return f.Valence, true
	case DimTempo:
		return f.Tempo, true
	case DimLoudness:
		return f.Loudness, true
	}
	return 0, false
}

// FeatureVector pairs a track id with its audio features. Immutable for
// the duration of one recommendation request.
type FeatureVector struct {
	TrackID  string        `json:"track_id"`
	Features AudioFeatures `json:"features"`
}
