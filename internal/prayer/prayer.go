package prayer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Name identifies one of the six daily boundaries.
type Name string

const (
	Fajr    Name = "Fajr"
	Sunrise Name = "Sunrise"
	Duhr    Name = "Duhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Names lists the boundaries in chronological order.
var Names = []Name{Fajr, Sunrise, Duhr, Asr, Maghrib, Isha}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[Name]string{
	Fajr:    "F",
	Sunrise: "S",
	Duhr:    "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

// Key returns the lower-case wire form of the name, e.g. "duhr".
func (n Name) Key() string {
	return strings.ToLower(string(n))
}

// ParseName resolves a prayer name case-insensitively. "dhuhr" and "zuhr"
// are accepted as spellings of Duhr.
func ParseName(s string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "dhuhr", "zuhr", "dhuhur":
		return Duhr, nil
	}
	for _, n := range Names {
		if n.Key() == key {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q", s)
}

// Coordinates is a validated observer position. Use NewCoordinates.
type Coordinates struct {
	lat, lng, elevation float64
}

// NewCoordinates validates latitude and longitude (degrees) and elevation
// (meters above sea level). Negative elevations are treated as sea level.
// Elevation moves Sunrise earlier and Maghrib later through the horizon dip.
func NewCoordinates(lat, lng, elevation float64) (Coordinates, error) {
	if !finite(lat) || lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinates, lat)
	}
	if !finite(lng) || lng < -180 || lng > 180 {
		return Coordinates{}, fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinates, lng)
	}
	if !finite(elevation) {
		return Coordinates{}, fmt.Errorf("%w: elevation %v is not a number", ErrInvalidCoordinates, elevation)
	}
	if elevation < 0 {
		elevation = 0
	}
	return Coordinates{lat: lat, lng: lng, elevation: elevation}, nil
}

func (c Coordinates) Latitude() float64  { return c.lat }
func (c Coordinates) Longitude() float64 { return c.lng }
func (c Coordinates) Elevation() float64 { return c.elevation }

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.lat, c.lng)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Date is a civil date with no time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD date, rejecting days that do not exist.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q must be YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf returns the civil date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Adjustments are manual per-prayer offsets in minutes.
type Adjustments struct {
	Fajr, Sunrise, Duhr, Asr, Maghrib, Isha int
}

// For returns the offset configured for n.
func (a Adjustments) For(n Name) int {
	switch n {
	case Fajr:
		return a.Fajr
	case Sunrise:
		return a.Sunrise
	case Duhr:
		return a.Duhr
	case Asr:
		return a.Asr
	case Maghrib:
		return a.Maghrib
	case Isha:
		return a.Isha
	}
	return 0
}

func (a *Adjustments) set(n Name, minutes int) {
	switch n {
	case Fajr:
		a.Fajr = minutes
	case Sunrise:
		a.Sunrise = minutes
	case Duhr:
		a.Duhr = minutes
	case Asr:
		a.Asr = minutes
	case Maghrib:
		a.Maghrib = minutes
	case Isha:
		a.Isha = minutes
	}
}

// ParseAdjustments builds Adjustments from a name -> minutes mapping such as
// {"fajr": 2, "isha": -3}. Absent prayers keep a zero offset.
func ParseAdjustments(m map[string]int) (Adjustments, error) {
	var adj Adjustments
	for key, minutes := range m {
		n, err := ParseName(key)
		if err != nil {
			return Adjustments{}, fmt.Errorf("%w: %v", ErrInvalidAdjustment, err)
		}
		adj.set(n, minutes)
	}
	return adj, nil
}

// ParseAdjustmentList parses the comma-separated "fajr=2,isha=-3" form used
// by the CLI and the config file.
func ParseAdjustmentList(s string) (Adjustments, error) {
	m := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return Adjustments{}, fmt.Errorf("%w: %q must be name=minutes", ErrInvalidAdjustment, part)
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return Adjustments{}, fmt.Errorf("%w: %q: minutes must be an integer", ErrInvalidAdjustment, part)
		}
		m[key] = minutes
	}
	return ParseAdjustments(m)
}

// String renders the non-zero offsets in ParseAdjustmentList form.
func (a Adjustments) String() string {
	var parts []string
	for _, n := range Names {
		if v := a.For(n); v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", n.Key(), v))
		}
	}
	return strings.Join(parts, ",")
}

// Prayer is a single named boundary.
type Prayer struct {
	Name Name
	Time time.Time
}

// Times holds the six boundaries computed for one civil date. Instants are in
// the fixed zone of the requested UTC offset; Date is the date they were
// computed for and is not re-derived from the instants.
type Times struct {
	Date    Date
	Fajr    time.Time
	Sunrise time.Time
	Duhr    time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time

	// Corrected lists the boundaries that were substituted by the
	// high-latitude rule because the twilight angle was never reached.
	Corrected []Name
}

// At returns the instant of boundary n.
func (t *Times) At(n Name) time.Time {
	switch n {
	case Fajr:
		return t.Fajr
	case Sunrise:
		return t.Sunrise
	case Duhr:
		return t.Duhr
	case Asr:
		return t.Asr
	case Maghrib:
		return t.Maghrib
	case Isha:
		return t.Isha
	}
	return time.Time{}
}

// Prayers returns the boundaries in chronological order.
func (t *Times) Prayers() []Prayer {
	out := make([]Prayer, len(Names))
	for i, n := range Names {
		out[i] = Prayer{Name: n, Time: t.At(n)}
	}
	return out
}

// Select returns the named boundaries in chronological order.
func (t *Times) Select(names []Name) []Prayer {
	want := make(map[Name]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Prayer
	for _, p := range t.Prayers() {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
