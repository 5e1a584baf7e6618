package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Setup populates a deterministic demo catalog so recommendations work
// out of the box before any playlist import has run.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE track_artists, tracks, albums, artists CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting artists")
	if err := seedArtists(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed artists: %w", err)
	}

	log.Println("[seed] inserting albums")
	if err := seedAlbums(ctx, pool); err != nil {
		return fmt.Errorf("seed albums: %w", err)
	}

	log.Println("[seed] inserting tracks")
	if err := seedTracks(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed tracks: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

var artistNames = []string{
	"Velvet Harbor", "The Paper Kites of June", "Mona Apsel",
	"Glasswing", "Delta Reverie", "Kastrup", "Iron Meadow",
	"Sable & Pine", "Juniper Halt", "Northlight Choir",
}

var artistGenres = [][]string{
	{"dream pop", "indie"}, {"indie folk"}, {"electropop"},
	{"shoegaze", "indie rock"}, {"ambient", "electronic"}, {"techno"},
	{"alt country"}, {"folk", "acoustic"}, {"indie rock"}, {"choral", "ambient"},
}

func artistID(i int) string { return fmt.Sprintf("seed-artist-%02d", i+1) }
func albumID(i int) string  { return fmt.Sprintf("seed-album-%02d", i+1) }

func seedArtists(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for i, name := range artistNames {
		popularity := rng.Intn(80) + 20
		followers := rng.Intn(2_000_000)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, artistID(i), name, artistGenres[i], popularity, followers)
	}

	query := "INSERT INTO artists (id, name, genres, popularity, followers) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedAlbums(ctx context.Context, pool *pgxpool.Pool) error {
	names := []string{
		"Harborlight", "Field Notes", "Afterglow Atlas", "Static Bloom",
		"Lowland Sessions", "Night Freight", "Second Summer", "Hollow Crown",
		"Wintering", "Chorus of Small Hours",
	}

	rows := []string{}
	args := []any{}
	for i, name := range names {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, albumID(i), name)
	}

	query := "INSERT INTO albums (id, name) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

var trackTitles = []string{
	"Caldera", "Slow Orbit", "Peninsula", "Half-Light", "Telegraph Hill",
	"Wake", "Oxbow", "Palisade", "Vigil", "Undertow",
	"Late Bloomer", "Cartography", "Estuary", "Meridian", "Stray Current",
	"Overland", "Parallax", "Quarry", "Driftwood", "Aperture",
}

func seedTracks(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	trackRows := []string{}
	trackArgs := []any{}
	edgeRows := []string{}
	edgeArgs := []any{}

	for i := 0; i < n; i++ {
		title := trackTitles[i%len(trackTitles)]
		if i >= len(trackTitles) {
			title = fmt.Sprintf("%s (Pt. %d)", title, i/len(trackTitles)+1)
		}

		trackID := fmt.Sprintf("seed-track-%03d", i+1)
		artistIdx := i % len(artistNames)
		album := albumID(i % 10)

		base := len(trackArgs)
		trackRows = append(trackRows, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
			base+8, base+9, base+10, base+11, base+12, base+13))
		trackArgs = append(trackArgs,
			trackID, title, album,
			150_000+rng.Intn(180_000),         // duration_ms
			powerLawScore(rng),                // popularity, power-law skewed
			roundedUnit(rng),                  // danceability
			roundedUnit(rng),                  // energy
			roundedUnit(rng),                  // valence
			roundedUnit(rng),                  // acousticness
			roundedUnit(rng),                  // liveness
			roundedUnit(rng)*0.4,              // speechiness skews low
			60+math.Round(rng.Float64()*120),  // tempo
			-math.Round(rng.Float64()*200)/10, // loudness in [-20, 0] dB
		)

		eBase := len(edgeArgs)
		edgeRows = append(edgeRows, fmt.Sprintf("($%d, $%d)", eBase+1, eBase+2))
		edgeArgs = append(edgeArgs, trackID, artistID(artistIdx))
	}

	query := `INSERT INTO tracks (id, name, album_id, duration_ms, popularity,
		danceability, energy, valence, acousticness, liveness, speechiness,
		tempo, loudness) VALUES ` + strings.Join(trackRows, ", ")
	if _, err := pool.Exec(ctx, query, trackArgs...); err != nil {
		return err
	}

	edgeQuery := "INSERT INTO track_artists (track_id, artist_id) VALUES " +
		strings.Join(edgeRows, ", ")
	_, err := pool.Exec(ctx, edgeQuery, edgeArgs...)
	return err
}

func roundedUnit(rng *rand.Rand) float64 {
	return math.Round(rng.Float64()*100) / 100
}

func powerLawScore(rng *rand.Rand) int {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return int(math.Round(raw * 100))
}
