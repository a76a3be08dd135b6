// Package geo finds an approximate observer location from the public IP.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Country   string
	Timezone  string // IANA name, e.g. "Asia/Jakarta"
	// UTCOffset is the zone's current offset, DST included.
	UTCOffset time.Duration
}

// Coordinates converts l to validated engine coordinates at sea level.
func (l *Location) Coordinates() (prayer.Coordinates, error) {
	return prayer.NewCoordinates(l.Latitude, l.Longitude, 0)
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
	Offset   int     `json:"offset"` // seconds east of UTC
}

// geoAPIURL is the geolocation API endpoint. It is a variable (not a constant)
// so that tests can override it with an httptest server URL.
var geoAPIURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone,offset"

const detectTimeout = 5 * time.Second

// DetectLocation uses ip-api.com to determine the user's location from their
// public IP address. This is a free service that requires no API key.
func DetectLocation(ctx context.Context) (*Location, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geoAPIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	loc := &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
		UTCOffset: time.Duration(result.Offset) * time.Second,
	}
	log.Debug().
		Float64("lat", loc.Latitude).
		Float64("lng", loc.Longitude).
		Str("city", loc.City).
		Dur("utc_offset", loc.UTCOffset).
		Msg("location detected")
	return loc, nil
}
