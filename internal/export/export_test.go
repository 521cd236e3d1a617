package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/clubmap/internal/club"
	"github.com/pfrederiksen/clubmap/internal/fixture"
)

func TestBuild(t *testing.T) {
	records := []*club.Record{
		{
			ID:          "4",
			Name:        "Benfica",
			SourceURL:   "https://www.zerozero.pt/team.php?id=4",
			Crest:       "https://www.zerozero.pt/img/logos/equipas/4_imgbank.png",
			Venue:       "Estádio da Luz",
			Coordinates: &club.Coordinates{Latitude: 38.7527, Longitude: -9.1847},
		},
		{ID: "3598", Name: "Lourinhanense", SourceURL: "https://www.zerozero.pt/equipa/lourinhanense/3598"},
		nil,
	}

	fc := Build(records)

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "4", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, [2]float64{-9.1847, 38.7527}, f.Geometry.Coordinates)
	assert.Equal(t, "Benfica", f.Properties.Club)
	assert.Equal(t, "Estádio da Luz", f.Properties.Stadium)
}

func TestBuild_Empty(t *testing.T) {
	fc := Build(nil)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, fixture.Records())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	assert.Contains(t, buf.String(), "Estádio do Dragão")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
	assert.Len(t, decoded["features"], 6)
}
