package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	cerrors "cloudeng.io/errors"
	"github.com/joho/godotenv"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

// Server holds the HTTP service settings. The Default* fields fill in
// request parameters the caller leaves out.
type Server struct {
	Addr         string
	LogLevel     string
	AllowOrigins []string

	DefaultLatitude   float64
	DefaultLongitude  float64
	DefaultTimezone   float64 // hours east of UTC
	DefaultMethod     string
	DefaultAsrMethod  string
	DefaultHighLat    string
	DefaultTimeFormat string
}

// DefaultServer returns the settings used when no environment overrides
// are present: Jakarta, UTC+7, Kemenag.
func DefaultServer() Server {
	return Server{
		Addr:              ":8080",
		LogLevel:          "info",
		AllowOrigins:      []string{"*"},
		DefaultLatitude:   -6.21462,
		DefaultLongitude:  106.84513,
		DefaultTimezone:   7,
		DefaultMethod:     prayer.DefaultMethod,
		DefaultAsrMethod:  prayer.Standard.String(),
		DefaultHighLat:    prayer.TwilightAngle.String(),
		DefaultTimeFormat: prayer.DefaultTimeFormat,
	}
}

// LoadServer reads a .env file if present (or the given files, which must
// exist), then overlays environment variables on DefaultServer:
//
//	PRAYER_ADDR, LOG_LEVEL, PRAYER_CORS_ORIGINS (comma-separated),
//	PRAYER_DEFAULT_LATITUDE, PRAYER_DEFAULT_LONGITUDE, PRAYER_DEFAULT_TIMEZONE,
//	PRAYER_DEFAULT_METHOD, PRAYER_DEFAULT_ASR_METHOD, PRAYER_DEFAULT_HIGH_LAT,
//	PRAYER_DEFAULT_TIME_FORMAT
//
// Variables already set in the process environment win over the file.
func LoadServer(envFiles ...string) (Server, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	s := DefaultServer()
	var errs cerrors.M

	if v, ok := lookup("PRAYER_ADDR"); ok {
		s.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		s.LogLevel = v
	}
	if v, ok := lookup("PRAYER_CORS_ORIGINS"); ok {
		s.AllowOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.AllowOrigins = append(s.AllowOrigins, o)
			}
		}
	}
	if v, ok := lookup("PRAYER_DEFAULT_LATITUDE"); ok {
		errs.Append(envFloat("PRAYER_DEFAULT_LATITUDE", v, &s.DefaultLatitude))
	}
	if v, ok := lookup("PRAYER_DEFAULT_LONGITUDE"); ok {
		errs.Append(envFloat("PRAYER_DEFAULT_LONGITUDE", v, &s.DefaultLongitude))
	}
	if v, ok := lookup("PRAYER_DEFAULT_TIMEZONE"); ok {
		errs.Append(envFloat("PRAYER_DEFAULT_TIMEZONE", v, &s.DefaultTimezone))
	}
	if v, ok := lookup("PRAYER_DEFAULT_METHOD"); ok {
		s.DefaultMethod = v
	}
	if v, ok := lookup("PRAYER_DEFAULT_ASR_METHOD"); ok {
		s.DefaultAsrMethod = v
	}
	if v, ok := lookup("PRAYER_DEFAULT_HIGH_LAT"); ok {
		s.DefaultHighLat = v
	}
	if v, ok := lookup("PRAYER_DEFAULT_TIME_FORMAT"); ok {
		s.DefaultTimeFormat = v
	}

	errs.Append(s.Validate())
	if err := errs.Err(); err != nil {
		return Server{}, err
	}
	return s, nil
}

// Validate checks that the request defaults are usable by the engine.
func (s Server) Validate() error {
	var errs cerrors.M
	if s.Addr == "" {
		errs.Append(fmt.Errorf("server address must not be empty"))
	}
	_, err := prayer.NewCoordinates(s.DefaultLatitude, s.DefaultLongitude, 0)
	errs.Append(err)
	errs.Append(checkTimezone(s.DefaultTimezone))
	_, err = prayer.LookupMethod(s.DefaultMethod)
	errs.Append(err)
	_, err = prayer.ParseJurisprudence(s.DefaultAsrMethod)
	errs.Append(err)
	_, err = prayer.ParseHighLatitudeRule(s.DefaultHighLat)
	errs.Append(err)
	return errs.Err()
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func envFloat(key, value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s=%q: must be a number", key, value)
	}
	*dst = v
	return nil
}
