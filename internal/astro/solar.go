// Package astro implements the low-precision solar position series and the
// hour-angle solver used to turn sun altitudes into times of day.
//
// Angles are in degrees and hour angles in hours throughout. The series is the
// USNO approximation, accurate to about a minute of time between 1950 and 2050
// and degrading slowly outside that range, which is sufficient for prayer
// scheduling but not for ephemeris work.
package astro

import (
	"math"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// j2000 is the Julian day of 2000-01-01 12:00 TT.
const j2000 = 2451545.0

// Position is the sun's declination and the equation of time for one instant.
type Position struct {
	Declination    float64 // degrees
	EquationOfTime float64 // minutes, apparent minus mean solar time
}

// NoonJD returns the Julian day of local mean noon at the given longitude
// (degrees, east positive) on a proleptic Gregorian civil date.
func NoonJD(year, month, day int, longitude float64) float64 {
	return julian.CalendarGregorianToJD(year, month, float64(day)+0.5) - longitude/360
}

// Solar returns the sun's position at Julian day jd.
func Solar(jd float64) Position {
	d := jd - j2000

	g := fixAngle(357.529 + 0.98560028*d) // mean anomaly
	q := fixAngle(280.459 + 0.98564736*d) // mean longitude
	gA := unit.AngleFromDeg(g)
	l := fixAngle(q + 1.915*gA.Sin() + 0.020*unit.AngleFromDeg(2*g).Sin())

	lA := unit.AngleFromDeg(l)
	eA := unit.AngleFromDeg(23.439 - 0.00000036*d) // obliquity of the ecliptic

	ra := fixHour(unit.Angle(math.Atan2(eA.Cos()*lA.Sin(), lA.Cos())).Deg() / 15)
	decl := unit.Angle(math.Asin(eA.Sin() * lA.Sin())).Deg()

	eqt := q/15 - ra
	eqt -= 24 * math.Round(eqt/24)

	return Position{
		Declination:    decl,
		EquationOfTime: eqt * 60,
	}
}

func fixAngle(a float64) float64 { return a - 360*math.Floor(a/360) }

func fixHour(h float64) float64 { return h - 24*math.Floor(h/24) }
