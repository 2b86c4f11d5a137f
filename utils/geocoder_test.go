package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devcamper/config"

	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "02108", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "42.3574", "lon": "-71.0636"}]`))
	}))
	defer server.Close()

	config.LoadConfig()
	config.AppConfig.GeocoderURL = server.URL

	loc, err := Geocode("02108")
	require.NoError(t, err)
	require.InDelta(t, 42.3574, loc.Latitude, 0.0001)
	require.InDelta(t, -71.0636, loc.Longitude, 0.0001)
}

func TestGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	config.LoadConfig()
	config.AppConfig.GeocoderURL = server.URL

	_, err := Geocode("00000")
	require.Error(t, err)
}

func TestGeocodeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	config.LoadConfig()
	config.AppConfig.GeocoderURL = server.URL

	_, err := Geocode("02108")
	require.Error(t, err)
}

func TestCentralAngle(t *testing.T) {
	// Boston to New York is roughly 190 miles
	angle := CentralAngle(42.3601, -71.0589, 40.7128, -74.0060)
	miles := angle * 3963

	require.InDelta(t, 190, miles, 10)

	require.Equal(t, float64(0), CentralAngle(42.36, -71.06, 42.36, -71.06))
}
