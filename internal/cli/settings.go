package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-engine/internal/api"
	"github.com/smokyabdulrahman/prayer-engine/internal/config"
	"github.com/smokyabdulrahman/prayer-engine/internal/geo"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// Jakarta is used when no location is configured and detection fails.
const (
	fallbackLatitude  = -6.21462
	fallbackLongitude = 106.84513
	fallbackTimezone  = 7.0
	fallbackLabel     = "Jakarta, Indonesia"
)

// detectLocation is the IP geolocation lookup. Tests replace it.
var detectLocation = geo.DetectLocation

// settings is the merged configuration for one invocation:
// CLI flags > config file > detected location > defaults.
type settings struct {
	params     prayer.Params
	timeFormat string
	prayers    []prayer.Name
	label      string
	// explicitDate is set when --date was given.
	explicitDate bool
}

// zone returns the fixed zone of the configured UTC offset.
func (s *settings) zone() *time.Location {
	return prayer.Zone(s.params.UTCOffset)
}

func effectiveSettings(cmd *cobra.Command, o *options) (*settings, error) {
	cfg := o.cfg
	if cfg == nil {
		cfg = &config.Config{}
	}
	defaults := config.Defaults()
	s := &settings{}

	pick := func(flag, flagValue, cfgValue, def string) string {
		switch {
		case flagWasSet(cmd, flag):
			return flagValue
		case cfgValue != "":
			return cfgValue
		}
		return def
	}

	coords, tz, label, err := resolveLocation(cmd, o, cfg)
	if err != nil {
		return nil, err
	}
	s.label = label
	s.params.Coordinates = coords
	s.params.UTCOffset = prayer.OffsetHours(tz)

	s.params.MethodName = pick("method", o.method, cfg.Method, defaults.Method)
	if flagWasSet(cmd, "fajr-angle") {
		var ishaAngle float64
		var ishaInterval int
		if flagWasSet(cmd, "isha-angle") {
			ishaAngle = o.ishaAngle
		}
		if flagWasSet(cmd, "isha-interval") {
			ishaInterval = o.ishaInterval
		}
		profile, err := prayer.NewProfile("custom", o.fajrAngle, ishaAngle, ishaInterval)
		if err != nil {
			return nil, err
		}
		s.params.Method = profile
		s.params.MethodName = profile.Name
	} else if flagWasSet(cmd, "isha-angle") || flagWasSet(cmd, "isha-interval") {
		return nil, fmt.Errorf("%w: --isha-angle and --isha-interval need --fajr-angle", prayer.ErrInvalidProfile)
	}

	if s.params.Jurisprudence, err = prayer.ParseJurisprudence(pick("asr-method", o.asrMethod, cfg.AsrMethod, defaults.AsrMethod)); err != nil {
		return nil, err
	}
	if s.params.HighLatitude, err = prayer.ParseHighLatitudeRule(pick("high-lat", o.highLat, cfg.HighLat, defaults.HighLat)); err != nil {
		return nil, err
	}
	if s.params.Adjustments, err = prayer.ParseAdjustmentList(pick("adjustments", o.adjustments, cfg.Adjustments, "")); err != nil {
		return nil, err
	}

	s.timeFormat = pick("time-format", o.timeFormat, cfg.TimeFormat, defaults.TimeFormat)

	s.prayers = prayer.Names
	if cfg.Prayers != "" {
		if s.prayers, err = config.ParsePrayers(cfg.Prayers); err != nil {
			return nil, err
		}
	}

	if flagWasSet(cmd, "date") {
		if s.params.Date, err = prayer.ParseDate(o.date); err != nil {
			return nil, err
		}
		s.explicitDate = true
	} else {
		s.params.Date = prayer.DateOf(nowFunc().In(s.zone()))
	}
	return s, nil
}

// resolveLocation returns coordinates, UTC offset in hours and a display
// label. Coordinates come from flags, then the config file, then IP
// geolocation, then Jakarta. An explicit offset from flags or config always
// wins; otherwise the detected zone, Jakarta's, or the system offset is used.
func resolveLocation(cmd *cobra.Command, o *options, cfg *config.Config) (prayer.Coordinates, float64, string, error) {
	lat, lng := cfg.Latitude, cfg.Longitude
	if flagWasSet(cmd, "latitude") {
		lat = &o.latitude
	}
	if flagWasSet(cmd, "longitude") {
		lng = &o.longitude
	}
	elevation := cfg.Elevation
	if flagWasSet(cmd, "elevation") {
		elevation = o.elevation
	}

	var tz *float64
	switch {
	case flagWasSet(cmd, "timezone"):
		tz = &o.timezone
	case cfg.Timezone != nil:
		tz = cfg.Timezone
	}
	orSystem := func(v *float64, def float64) float64 {
		if v != nil {
			return *v
		}
		return def
	}
	_, systemOffset := nowFunc().Zone()
	systemTZ := float64(systemOffset) / 3600

	switch {
	case lat != nil && lng != nil:
		coords, err := prayer.NewCoordinates(*lat, *lng, elevation)
		if err != nil {
			return prayer.Coordinates{}, 0, "", err
		}
		return coords, orSystem(tz, systemTZ), coords.String(), nil
	case lat != nil || lng != nil:
		return prayer.Coordinates{}, 0, "", fmt.Errorf("%w: both latitude and longitude are required", prayer.ErrInvalidCoordinates)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	detected, err := detectLocation(ctx)
	if err == nil {
		coords, cerr := detected.Coordinates()
		if cerr == nil {
			label := coords.String()
			if detected.City != "" {
				label = detected.City + ", " + detected.Country
			}
			return coords, orSystem(tz, detected.UTCOffset.Hours()), label, nil
		}
		err = cerr
	}
	log.Warn().Err(err).Msg("location detection failed, using Jakarta")

	coords, _ := prayer.NewCoordinates(fallbackLatitude, fallbackLongitude, elevation)
	return coords, orSystem(tz, fallbackTimezone), fallbackLabel, nil
}

// newSource returns where times come from: the local engine, or the
// server named by --server.
func newSource(o *options, s *settings) source {
	if o.server == "" {
		return localSource{params: s.params}
	}

	lat, lng, elevation := s.params.Coordinates.Latitude(), s.params.Coordinates.Longitude(), s.params.Coordinates.Elevation()
	tz := s.params.UTCOffset.Hours()
	req := api.Request{
		Latitude:  &lat,
		Longitude: &lng,
		Elevation: &elevation,
		Method:    s.params.MethodName,
		AsrMethod: s.params.Jurisprudence.String(),
		HighLat:   s.params.HighLatitude.String(),
		Timezone:  &tz,
	}
	if p := s.params.Method; p.Isha != nil {
		req.Method = ""
		req.FajrAngle = &p.FajrAngle
		switch r := p.Isha.(type) {
		case prayer.IshaAngle:
			v := float64(r)
			req.IshaAngle = &v
		case prayer.IshaInterval:
			v := int(r)
			req.IshaInterval = &v
		}
	}
	if adj := s.params.Adjustments; adj != (prayer.Adjustments{}) {
		req.Adjustments = make(map[string]int)
		for _, n := range prayer.Names {
			if v := adj.For(n); v != 0 {
				req.Adjustments[n.Key()] = v
			}
		}
	}
	return remoteSource{client: api.NewClient(o.server), req: req, zone: s.zone()}
}
