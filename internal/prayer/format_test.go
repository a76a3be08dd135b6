package prayer

import (
	"strings"
	"testing"
	"time"
)

// helper: a fixed prayer and "now" time for format tests.
func formatTestPrayer() (Prayer, time.Time) {
	pTime := time.Date(2026, 2, 28, 15, 2, 0, 0, time.UTC)
	now := time.Date(2026, 2, 28, 12, 47, 0, 0, time.UTC)
	return Prayer{Name: Asr, Time: pTime}, now
}

func TestFormatOutput_AllBuiltinModes(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		mode string
		want string
	}{
		{FormatTimeRemaining, "2h 15m"},
		{FormatNextPrayerTime, "15:02"},
		{FormatNameAndTime, "Asr 15:02"},
		{FormatNameAndRemaining, "Asr 2h 15m"},
		{FormatShortNameAndTime, "A 15:02"},
		{FormatShortNameAndRemain, "A 2h 15m"},
		{FormatFull, "Asr 15:02 (2h 15m)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(p, now, tt.mode, "H:i")
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_12HourFormat(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, FormatNameAndTime, "12h")
	if got != "Asr 3:02 PM" {
		t.Errorf("12h format = %q, want %q", got, "Asr 3:02 PM")
	}
}

func TestFormatOutput_UnknownModeDefaultsToNameAndTime(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, "nonexistent-format", "H:i")
	if got != "Asr 15:02" {
		t.Errorf("unknown mode = %q, want %q", got, "Asr 15:02")
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{
			"name and remaining",
			"{{.Name}} in {{.Remaining}}",
			"Asr in 2h 15m",
		},
		{
			"short name and time",
			"{{.ShortName}} @ {{.Time}}",
			"A @ 15:02",
		},
		{
			"hours and minutes fields",
			"{{.Hours}}h {{.Minutes}}m until {{.Name}}",
			"2h 15m until Asr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutput(p, now, tt.tmpl, "H:i")
			if got != tt.want {
				t.Errorf("custom template %q = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_InvalidTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	for _, tmpl := range []string{"{{.Invalid", "{{.NonExistent}}"} {
		got := FormatOutput(p, now, tmpl, "H:i")
		if !strings.HasPrefix(got, "template-err:") {
			t.Errorf("template %q should return 'template-err:...', got %q", tmpl, got)
		}
	}
}

// ---------------------------------------------------------------------------
// FormatTime
// ---------------------------------------------------------------------------

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 2, 28, 15, 2, 9, 0, Zone(7*time.Hour))
	early := time.Date(2026, 2, 28, 5, 7, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		format string
		want   string
	}{
		{"default php clock", ts, "H:i", "15:02"},
		{"empty means default", ts, "", "15:02"},
		{"24h alias", ts, "24h", "15:02"},
		{"12h alias", ts, "12h", "3:02 PM"},
		{"padded 12 hour lower meridiem", ts, "h:i a", "03:02 pm"},
		{"unpadded 24 hour", early, "G:i", "5:07"},
		{"full timestamp", ts, "Y-m-d H:i:s", "2026-02-28 15:02:09"},
		{"weekday and month names", ts, "D, d M y", "Sat, 28 Feb 26"},
		{"offset", ts, "H:i P", "15:02 +07:00"},
		{"escaped token", ts, `\H\: H`, "H: 15"},
		{"unknown characters copied", ts, "H.i @", "15.02 @"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.t, tt.format); got != tt.want {
				t.Errorf("FormatTime(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
