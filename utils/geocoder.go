package utils

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"devcamper/config"

	"github.com/go-resty/resty/v2"
)

// GeoLocation is a geocoded point
type GeoLocation struct {
	Latitude  float64
	Longitude float64
}

var geoClient = resty.New().SetTimeout(10 * time.Second)

// Geocode resolves a free-form query (an address or a postal code) to
// coordinates via the configured geocoding provider. The provider returns
// lat/lon as strings.
func Geocode(query string) (*GeoLocation, error) {
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}

	resp, err := geoClient.R().
		SetQueryParams(map[string]string{
			"q":       query,
			"api_key": config.AppConfig.GeocoderKey,
		}).
		SetResult(&results).
		Get(config.AppConfig.GeocoderURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocoder responded with status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no location found for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude from geocoder: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude from geocoder: %w", err)
	}

	return &GeoLocation{Latitude: lat, Longitude: lon}, nil
}

// CentralAngle returns the spherical angle in radians between two points.
// Comparing it against distance/earthRadius gives a radius search without
// needing geospatial support in the store.
func CentralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
