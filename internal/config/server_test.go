package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smokyabdulrahman/prayer-engine/internal/prayer"
)

var serverEnvKeys = []string{
	"PRAYER_ADDR", "LOG_LEVEL", "PRAYER_CORS_ORIGINS",
	"PRAYER_DEFAULT_LATITUDE", "PRAYER_DEFAULT_LONGITUDE", "PRAYER_DEFAULT_TIMEZONE",
	"PRAYER_DEFAULT_METHOD", "PRAYER_DEFAULT_ASR_METHOD", "PRAYER_DEFAULT_HIGH_LAT",
	"PRAYER_DEFAULT_TIME_FORMAT",
}

// clearServerEnv blanks every server variable for the test and runs it in
// an empty directory so no stray .env is picked up.
func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range serverEnvKeys {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestDefaultServer(t *testing.T) {
	s := DefaultServer()
	if s.Addr != ":8080" {
		t.Errorf("Addr = %q", s.Addr)
	}
	if s.DefaultLatitude != -6.21462 || s.DefaultLongitude != 106.84513 || s.DefaultTimezone != 7 {
		t.Errorf("default location = %v, %v tz %v", s.DefaultLatitude, s.DefaultLongitude, s.DefaultTimezone)
	}
	if s.DefaultMethod != "kemenag" || s.DefaultAsrMethod != "standard" || s.DefaultHighLat != "twilight_angle" {
		t.Errorf("default rules = %s/%s/%s", s.DefaultMethod, s.DefaultAsrMethod, s.DefaultHighLat)
	}
	if s.DefaultTimeFormat != "H:i" {
		t.Errorf("DefaultTimeFormat = %q", s.DefaultTimeFormat)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadServer_NoEnv(t *testing.T) {
	clearServerEnv(t)

	s, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if s.Addr != DefaultServer().Addr || s.DefaultMethod != DefaultServer().DefaultMethod {
		t.Errorf("LoadServer without env = %+v, want defaults", s)
	}
}

func TestLoadServer_EnvOverrides(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("PRAYER_ADDR", ":9090")
	t.Setenv("PRAYER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PRAYER_DEFAULT_LATITUDE", "21.4225")
	t.Setenv("PRAYER_DEFAULT_LONGITUDE", "39.8262")
	t.Setenv("PRAYER_DEFAULT_TIMEZONE", "3")
	t.Setenv("PRAYER_DEFAULT_METHOD", "makkah")
	t.Setenv("PRAYER_DEFAULT_HIGH_LAT", "middle_of_night")

	s, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if s.Addr != ":9090" {
		t.Errorf("Addr = %q", s.Addr)
	}
	if len(s.AllowOrigins) != 2 || s.AllowOrigins[1] != "https://b.example" {
		t.Errorf("AllowOrigins = %v", s.AllowOrigins)
	}
	if s.DefaultLatitude != 21.4225 || s.DefaultLongitude != 39.8262 || s.DefaultTimezone != 3 {
		t.Errorf("location = %v, %v tz %v", s.DefaultLatitude, s.DefaultLongitude, s.DefaultTimezone)
	}
	if s.DefaultMethod != "makkah" || s.DefaultHighLat != "middle_of_night" {
		t.Errorf("rules = %s/%s", s.DefaultMethod, s.DefaultHighLat)
	}
	if s.DefaultAsrMethod != "standard" {
		t.Errorf("unset asr method should keep its default, got %q", s.DefaultAsrMethod)
	}
}

func TestLoadServer_EnvFile(t *testing.T) {
	clearServerEnv(t)
	// godotenv does not override variables that already exist, even empty
	// ones, so drop the one the file sets.
	os.Unsetenv("PRAYER_DEFAULT_METHOD")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PRAYER_DEFAULT_METHOD=egypt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PRAYER_DEFAULT_METHOD") })

	s, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if s.DefaultMethod != "egypt" {
		t.Errorf("DefaultMethod = %q, want egypt", s.DefaultMethod)
	}
}

func TestLoadServer_MissingExplicitFile(t *testing.T) {
	clearServerEnv(t)
	if _, err := LoadServer(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for a missing explicit env file")
	}
}

func TestLoadServer_AccumulatesErrors(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("PRAYER_DEFAULT_LATITUDE", "north")
	t.Setenv("PRAYER_DEFAULT_LONGITUDE", "200")
	t.Setenv("PRAYER_DEFAULT_METHOD", "atlantis")
	t.Setenv("PRAYER_DEFAULT_ASR_METHOD", "maliki")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []error{
		prayer.ErrInvalidCoordinates,
		prayer.ErrMethodNotSupported,
		prayer.ErrJurisprudenceNotSupported,
	} {
		if !errors.Is(err, want) {
			t.Errorf("error %v does not wrap %v", err, want)
		}
	}
}
