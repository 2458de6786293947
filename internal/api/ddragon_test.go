package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDDragon(t *testing.T, handler http.Handler) *DataDragonClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewDataDragonClient(&config.Config{DDragonLocale: "en_US"}, zerolog.Nop())
	client.versionsURL = srv.URL + "/api/versions.json"
	client.cdnBase = srv.URL + "/cdn"
	return client
}

func ddragonHandler(fetches *atomic.Int32) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["14.1.1","13.24.1"]`))
	})
	mux.HandleFunc("/cdn/14.1.1/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		if fetches != nil {
			fetches.Add(1)
		}
		w.Write([]byte(`{"data":{
			"Ahri":{"id":"Ahri","key":"103","name":"Ahri"},
			"MonkeyKing":{"id":"MonkeyKing","key":"62","name":"Wukong"}}}`))
	})
	return mux
}

func TestCatalogResolvesChampions(t *testing.T) {
	client := newTestDDragon(t, ddragonHandler(nil))

	catalog, err := client.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "14.1.1", catalog.Version())

	ahri := catalog.ChampionByID(103)
	assert.Equal(t, "Ahri", ahri.Name)

	// display name differs from the icon slug
	wukong := catalog.ChampionByID(62)
	assert.Equal(t, "Wukong", wukong.Name)
	assert.Equal(t, "MonkeyKing", wukong.Slug)
	assert.Contains(t, catalog.ChampionIconURL(wukong.Slug), "/cdn/14.1.1/img/champion/MonkeyKing.png")
}

func TestCatalogUnknownChampion(t *testing.T) {
	client := newTestDDragon(t, ddragonHandler(nil))

	catalog, err := client.Catalog(context.Background())
	require.NoError(t, err)

	champ := catalog.ChampionByID(999999)
	assert.Equal(t, "Unknown", champ.Name)
	assert.Equal(t, "Unknown", champ.Slug)
}

func TestCatalogCachedAfterFirstFetch(t *testing.T) {
	var fetches atomic.Int32
	client := newTestDDragon(t, ddragonHandler(&fetches))

	_, err := client.Catalog(context.Background())
	require.NoError(t, err)
	_, err = client.Catalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), fetches.Load())
}

func TestCatalogVersionFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/cdn/"+constants.FallbackDataDragonVersion+"/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"Ahri":{"id":"Ahri","key":"103","name":"Ahri"}}}`))
	})
	client := newTestDDragon(t, mux)

	catalog, err := client.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, constants.FallbackDataDragonVersion, catalog.Version())
}

func TestCatalogFetchFailureNotCached(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["14.1.1"]`))
	})
	mux.HandleFunc("/cdn/14.1.1/data/en_US/champion.json", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":{"Ahri":{"id":"Ahri","key":"103","name":"Ahri"}}}`))
	})
	client := newTestDDragon(t, mux)

	_, err := client.Catalog(context.Background())
	require.Error(t, err)

	failing.Store(false)
	catalog, err := client.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ahri", catalog.ChampionByID(103).Name)
}

func TestEmptyCatalog(t *testing.T) {
	catalog := EmptyCatalog()
	assert.Equal(t, "Unknown", catalog.ChampionByID(103).Name)
	assert.Contains(t, catalog.ProfileIconURL(1234), "/img/profileicon/1234.png")
}
