package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-engine/internal/astro"
)

// refraction is the apparent altitude of the sun's upper limb at sunrise and
// sunset: 34' of refraction plus 16' of solar semi-diameter.
const refraction = 0.833

// maxUTCOffset bounds the offsets in use by civil time zones.
const maxUTCOffset = 14 * time.Hour

// Params configures one calculation. Method takes precedence over
// MethodName; when Method is the zero Profile the registry entry named
// MethodName is used.
//
// A non-zero Coordinates elevation lowers the horizon by 0.0347·√h degrees,
// so Sunrise comes earlier and Maghrib later than at sea level. The other
// boundaries do not depend on elevation.
type Params struct {
	Coordinates   Coordinates
	Date          Date
	Method        Profile
	MethodName    string
	Jurisprudence Jurisprudence
	HighLatitude  HighLatitudeRule
	Adjustments   Adjustments
	UTCOffset     time.Duration
}

// OffsetHours converts a possibly fractional hour offset such as 5.5 to a
// duration rounded to the second.
func OffsetHours(h float64) time.Duration {
	return time.Duration(math.Round(h*3600)) * time.Second
}

// Zone returns the fixed zone for a UTC offset, named like "UTC+05:30".
func Zone(offset time.Duration) *time.Location {
	sign := '+'
	abs := offset
	if offset < 0 {
		sign = '-'
		abs = -offset
	}
	h := int(abs / time.Hour)
	m := int((abs % time.Hour) / time.Minute)
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, h, m), int(offset/time.Second))
}

func (p Params) profile() (Profile, error) {
	if p.Method.Isha != nil {
		if err := p.Method.Validate(); err != nil {
			return Profile{}, err
		}
		return p.Method, nil
	}
	return LookupMethod(p.MethodName)
}

func (p Params) validate() error {
	if p.Jurisprudence != Standard && p.Jurisprudence != Hanafi {
		return fmt.Errorf("%w: %d", ErrJurisprudenceNotSupported, int(p.Jurisprudence))
	}
	if _, ok := highLatitudeTokens[p.HighLatitude]; !ok {
		return fmt.Errorf("%w: %d", ErrHighLatitudeRuleNotSupported, int(p.HighLatitude))
	}
	if p.UTCOffset < -maxUTCOffset || p.UTCOffset > maxUTCOffset {
		return fmt.Errorf("%w: offset %v exceeds ±14h", ErrInvalidTimezone, p.UTCOffset)
	}
	if p.Date.Month < time.January || p.Date.Month > time.December || p.Date.Day < 1 || p.Date.Day > 31 {
		return fmt.Errorf("%w: %v", ErrInvalidDate, p.Date)
	}
	if DateOf(time.Date(p.Date.Year, p.Date.Month, p.Date.Day, 12, 0, 0, 0, time.UTC)) != p.Date {
		return fmt.Errorf("%w: %v does not exist", ErrInvalidDate, p.Date)
	}
	return nil
}

// solarDay is the sun's geometry on one date, in hours after 00:00 UTC of
// that date.
type solarDay struct {
	decl    float64
	noon    float64
	horizon float64 // hour angle of sunrise and sunset
}

func solarDayFor(d Date, c Coordinates) (solarDay, error) {
	pos := astro.Solar(astro.NoonJD(d.Year, int(d.Month), d.Day, c.lng))
	altitude := -(refraction + 0.0347*math.Sqrt(c.elevation))

	h, err := astro.HourAngle(pos.Declination, c.lat, altitude)
	if err != nil {
		return solarDay{}, fmt.Errorf("%w: %v at latitude %.4f", ErrHighLatitudeUnsupported, d, c.lat)
	}
	return solarDay{
		decl:    pos.Declination,
		noon:    solarNoon(d, c.lng),
		horizon: h,
	}, nil
}

// solarDate returns the date whose solar noon falls on p.Date in the
// requested zone. It differs from p.Date when the zone's offset is a day away
// from the longitude's mean time, as in Samoa or Kiribati.
func (p Params) solarDate() Date {
	noon := p.Date.midnightUTC().Add(hoursDuration(solarNoon(p.Date, p.Coordinates.lng)))
	local := DateOf(noon.In(Zone(p.UTCOffset)))
	shift := int(local.midnightUTC().Sub(p.Date.midnightUTC()) / (24 * time.Hour))
	return p.Date.AddDays(-shift)
}

// solarNoon is the transit of the sun in hours after 00:00 UTC of d.
func solarNoon(d Date, lng float64) float64 {
	pos := astro.Solar(astro.NoonJD(d.Year, int(d.Month), d.Day, lng))
	return 12 - lng/15 - pos.EquationOfTime/60
}

func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// Calculate computes the six boundaries for p. It either returns a fully
// populated Times or an error wrapping one of the package's sentinel errors.
func Calculate(p Params) (*Times, error) {
	profile, err := p.profile()
	if err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	c := p.Coordinates
	solarDate := p.solarDate()
	day, err := solarDayFor(solarDate, c)
	if err != nil {
		return nil, err
	}

	sunrise := day.noon - day.horizon
	maghrib := day.noon + day.horizon

	asrH, err := astro.HourAngle(day.decl, c.lat, astro.AsrAltitude(p.Jurisprudence.Shadow(), c.lat, day.decl))
	if err != nil {
		return nil, fmt.Errorf("%w: sun does not reach the %s Asr altitude on %v", ErrHighLatitudeUnsupported, p.Jurisprudence, p.Date)
	}
	asr := day.noon + asrH

	// night is only needed when a twilight angle is never reached.
	var nightHours float64
	night := func() (float64, error) {
		if nightHours > 0 {
			return nightHours, nil
		}
		next, err := solarDayFor(solarDate.AddDays(1), c)
		if err != nil {
			return 0, err
		}
		nightHours = 24 + next.noon - next.horizon - maghrib
		return nightHours, nil
	}

	var corrected []Name

	fajr, err := twilight(day, c.lat, profile.FajrAngle, -1)
	if errors.Is(err, astro.ErrNoSolution) {
		n, err := night()
		if err != nil {
			return nil, err
		}
		fajr = sunrise - p.HighLatitude.portion(profile.FajrAngle)*n
		corrected = append(corrected, Fajr)
	}

	var isha float64
	switch rule := profile.Isha.(type) {
	case IshaInterval:
		isha = maghrib + float64(rule)/60
	case IshaAngle:
		isha, err = twilight(day, c.lat, float64(rule), 1)
		if errors.Is(err, astro.ErrNoSolution) {
			n, err := night()
			if err != nil {
				return nil, err
			}
			isha = maghrib + p.HighLatitude.portion(float64(rule))*n
			corrected = append(corrected, Isha)
		}
	}

	raw := []float64{fajr, sunrise, day.noon, asr, maghrib, isha}
	for i := 1; i < len(raw); i++ {
		if !finite(raw[i]) || !(raw[i-1] < raw[i]) {
			return nil, fmt.Errorf("%w: %s does not follow %s on %v", ErrHighLatitudeUnsupported, Names[i], Names[i-1], p.Date)
		}
	}

	base := solarDate.midnightUTC()
	zone := Zone(p.UTCOffset)
	instant := func(n Name, hours float64) time.Time {
		t := base.Add(hoursDuration(hours)).Round(time.Minute)
		return t.Add(time.Duration(p.Adjustments.For(n)) * time.Minute).In(zone)
	}

	times := &Times{
		Date:      p.Date,
		Fajr:      instant(Fajr, fajr),
		Sunrise:   instant(Sunrise, sunrise),
		Duhr:      instant(Duhr, day.noon),
		Asr:       instant(Asr, asr),
		Maghrib:   instant(Maghrib, maghrib),
		Isha:      instant(Isha, isha),
		Corrected: corrected,
	}
	// An interval Isha is measured from the rounded Maghrib.
	if rule, ok := profile.Isha.(IshaInterval); ok {
		times.Isha = instant(Isha, maghrib).Add(time.Duration(rule) * time.Minute)
	}
	return times, nil
}

// twilight returns the boundary at which the sun is angle degrees below the
// horizon, before noon for direction -1 and after it for +1.
func twilight(day solarDay, lat, angle float64, direction float64) (float64, error) {
	h, err := astro.HourAngle(day.decl, lat, -angle)
	if err != nil {
		return 0, err
	}
	return day.noon + direction*h, nil
}
