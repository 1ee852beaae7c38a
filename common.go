package geotrans

import (
	"math"

	"github.com/golang/geo/s1"
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2
	epsln  = 1e-10
)

func deg2rad(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func rad2deg(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// adjustLon wraps a longitude that is up to one turn out of range.
func adjustLon(x float64) float64 {
	if math.Abs(x) < math.Pi {
		return x
	}
	return x - sign(x)*twoPi
}

// normalizeLon maps any finite longitude into (-Pi, Pi].
func normalizeLon(lon float64) float64 {
	lon = math.Remainder(lon, twoPi)
	if lon <= -math.Pi {
		lon += twoPi
	}
	return lon
}

// asinz is math.Asin with the argument clamped to [-1, 1].
func asinz(x float64) float64 {
	if math.Abs(x) > 1 {
		x = sign(x)
	}
	return math.Asin(x)
}

// acosz is math.Acos with the argument clamped to [-1, 1].
func acosz(x float64) float64 {
	if math.Abs(x) > 1 {
		x = sign(x)
	}
	return math.Acos(x)
}

// Meridional distance series coefficients (Snyder, Map Projections: A
// Working Manual, eq. 3-21).

func e0fn(es float64) float64 {
	return 1 - 0.25*es*(1+es/16*(3+1.25*es))
}

func e1fn(es float64) float64 {
	return 0.375 * es * (1 + 0.25*es*(1+0.46875*es))
}

func e2fn(es float64) float64 {
	return 0.05859375 * es * es * (1 + 0.75*es)
}

func e3fn(es float64) float64 {
	return es * es * es * (35.0 / 3072)
}

// mlfn is the meridional distance to latitude phi on a unit ellipsoid.
func mlfn(e0, e1, e2, e3, phi float64) float64 {
	return e0*phi - e1*math.Sin(2*phi) + e2*math.Sin(4*phi) - e3*math.Sin(6*phi)
}
