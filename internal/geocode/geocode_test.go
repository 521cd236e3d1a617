package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers from a fixed table and records every query
type fakeProvider struct {
	answers map[string]*club.Coordinates
	errs    map[string]error
	queries []string
	times   []time.Time
}

func (f *fakeProvider) Lookup(_ context.Context, query string) (*club.Coordinates, error) {
	f.queries = append(f.queries, query)
	f.times = append(f.times, time.Now())
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.answers[query], nil
}

func TestLocate_FallbackOrder(t *testing.T) {
	cityY := &club.Coordinates{Latitude: 41.1, Longitude: -8.6}
	provider := &fakeProvider{
		answers: map[string]*club.Coordinates{"City Y, Portugal": cityY},
	}
	g := New(provider, Options{Delay: -1})

	result, err := g.Locate(context.Background(), []string{"Estádio X", "City Y"})
	require.NoError(t, err)

	require.True(t, result.Found())
	assert.Equal(t, *cityY, *result.Coordinates)
	assert.Equal(t, "City Y, Portugal", result.Query)
	assert.Equal(t, []string{"Estádio X, Portugal", "City Y, Portugal"}, provider.queries)
	require.Len(t, result.Attempts, 2)
	assert.False(t, result.Attempts[0].Found)
	assert.True(t, result.Attempts[1].Found)
}

func TestLocate_StopsAtFirstHit(t *testing.T) {
	provider := &fakeProvider{
		answers: map[string]*club.Coordinates{
			"Estádio da Luz, Portugal": {Latitude: 38.75, Longitude: -9.18},
			"Lisboa, Portugal":         {Latitude: 38.72, Longitude: -9.14},
		},
	}
	g := New(provider, Options{Delay: -1})

	result, err := g.Locate(context.Background(), []string{"Estádio da Luz", "Lisboa"})
	require.NoError(t, err)
	assert.Equal(t, 38.75, result.Coordinates.Latitude)
	assert.Equal(t, []string{"Estádio da Luz, Portugal"}, provider.queries)
}

func TestLocate_ErrorsAreNonFatal(t *testing.T) {
	provider := &fakeProvider{
		errs:    map[string]error{"Estádio X, Portugal": errors.New("timeout")},
		answers: map[string]*club.Coordinates{"Braga, Portugal": {Latitude: 41.5, Longitude: -8.4}},
	}
	g := New(provider, Options{Delay: -1})

	result, err := g.Locate(context.Background(), []string{"Estádio X", "Braga"})
	require.NoError(t, err)
	require.True(t, result.Found())
	assert.EqualError(t, result.Attempts[0].Err, "timeout")
}

func TestLocate_Miss(t *testing.T) {
	provider := &fakeProvider{errs: map[string]error{"B, Portugal": errors.New("boom")}}
	g := New(provider, Options{Delay: -1})

	result, err := g.Locate(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Nil(t, result.Coordinates)
	assert.Len(t, result.Attempts, 2)
}

func TestLocate_NoClues(t *testing.T) {
	provider := &fakeProvider{}
	g := New(provider, Options{Delay: -1})

	result, err := g.Locate(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Empty(t, provider.queries)
}

func TestLocate_PacesCallsGlobally(t *testing.T) {
	delay := 40 * time.Millisecond
	provider := &fakeProvider{}
	g := New(provider, Options{Delay: delay})
	ctx := context.Background()

	// two records, two clues each: four provider calls in sequence
	_, err := g.Locate(ctx, []string{"A", "B"})
	require.NoError(t, err)
	_, err = g.Locate(ctx, []string{"C", "D"})
	require.NoError(t, err)

	require.Len(t, provider.times, 4)
	for i := 1; i < len(provider.times); i++ {
		gap := provider.times[i].Sub(provider.times[i-1])
		assert.GreaterOrEqual(t, gap, delay-5*time.Millisecond, "gap %d was %v", i, gap)
	}
}

func TestLocate_CachesResults(t *testing.T) {
	provider := &fakeProvider{
		answers: map[string]*club.Coordinates{"Lisboa, Portugal": {Latitude: 38.72, Longitude: -9.14}},
	}
	g := New(provider, Options{Delay: -1})
	ctx := context.Background()

	_, err := g.Locate(ctx, []string{"Nowhere", "Lisboa"})
	require.NoError(t, err)
	result, err := g.Locate(ctx, []string{"nowhere", "LISBOA"})
	require.NoError(t, err)

	assert.True(t, result.Found())
	// second record answered from cache, misses included
	assert.Len(t, provider.queries, 2)
}

func TestLocate_Cancelled(t *testing.T) {
	g := New(&fakeProvider{}, Options{Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := g.Locate(ctx, []string{"A"})
	require.NoError(t, err)

	cancel()
	_, err = g.Locate(ctx, []string{"B"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClues(t *testing.T) {
	rec := &club.Record{Name: "Torreense", Venue: "Estádio Manuel Marques", Address: "Torres Vedras"}

	g := New(&fakeProvider{}, Options{})
	assert.Equal(t, []string{"Estádio Manuel Marques", "Torres Vedras"}, g.Clues(rec))

	g = New(&fakeProvider{}, Options{NameFallback: true})
	assert.Equal(t, []string{"Estádio Manuel Marques", "Torres Vedras", "Torreense FC"}, g.Clues(rec))

	assert.Empty(t, New(&fakeProvider{}, Options{}).Clues(&club.Record{Name: "X"}))
}

func TestQueries(t *testing.T) {
	g := New(&fakeProvider{}, Options{Country: "España"})
	got := g.Queries([]string{" Camp  Nou ", "", "camp nou", "Barcelona"})
	assert.Equal(t, []string{"Camp Nou, España", "Barcelona, España"}, got)
}

func TestNew_Defaults(t *testing.T) {
	g := New(&fakeProvider{}, Options{})
	assert.Equal(t, DefaultCountry, g.opts.Country)
	assert.Equal(t, DefaultDelay, g.pacer.Interval())
}
