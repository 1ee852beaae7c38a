package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"
	logger "github.com/sirupsen/logrus"
)

// GeocentricPoint is an earth-centred, earth-fixed Cartesian coordinate in
// metres, tied to the datum (and so the ellipsoid) it is expressed in.
//
// The Z axis is the axis of rotation, positive towards the north pole. The X
// axis passes through the intersection of the prime meridian and the equator.
type GeocentricPoint struct {
	x, y, z float64
	datum   Datum
}

// Geocentric inverse loop: end criterion on sin(latitude) and iteration cap.
const (
	genau             = 1e-12
	genau2            = genau * genau
	geocentricMaxIter = 30
)

var geocentricParams = aliasTable{
	"0": "x", "x": "x",
	"1": "y", "y": "y",
	"2": "z", "z": "z",
	"datum": "datum",
}

// NewGeocentricPoint returns the point (x, y, z) in datum d. The zero Datum
// stands for WGS84.
func NewGeocentricPoint(x, y, z float64, d Datum) GeocentricPoint {
	return GeocentricPoint{x: x, y: y, z: z, datum: orWGS84(d)}
}

// GeocentricFromVector returns the point at v in datum d.
func GeocentricFromVector(v r3.Vector, d Datum) GeocentricPoint {
	return NewGeocentricPoint(v.X, v.Y, v.Z, d)
}

// NewGeocentricPointParams constructs a point from the keys x|0, y|1, z|2 and
// datum (a Datum or its parameters). Missing ordinates are zero.
func NewGeocentricPointParams(p Params) (GeocentricPoint, error) {
	vals, err := geocentricParams.resolve(p, "geocentric point")
	if err != nil {
		return GeocentricPoint{}, err
	}
	var xyz [3]float64
	for i, name := range []string{"x", "y", "z"} {
		if v, ok := vals[name]; ok {
			if xyz[i], err = toFloat("geocentric point", name, v); err != nil {
				return GeocentricPoint{}, err
			}
		}
	}
	d := WGS84Datum
	if v, ok := vals["datum"]; ok {
		if d, err = toDatum("geocentric point", v); err != nil {
			return GeocentricPoint{}, err
		}
	}
	return NewGeocentricPoint(xyz[0], xyz[1], xyz[2], d), nil
}

// X returns the X ordinate in metres.
func (p GeocentricPoint) X() float64 { return p.x }

// Y returns the Y ordinate in metres.
func (p GeocentricPoint) Y() float64 { return p.y }

// Z returns the Z ordinate in metres.
func (p GeocentricPoint) Z() float64 { return p.z }

// Vector returns the point as a vector.
func (p GeocentricPoint) Vector() r3.Vector {
	return r3.Vector{X: p.x, Y: p.y, Z: p.z}
}

// Datum returns the datum the point is expressed in.
func (p GeocentricPoint) Datum() Datum { return p.datum }

// Ellipsoid returns the ellipsoid of the point's datum.
func (p GeocentricPoint) Ellipsoid() Ellipsoid { return p.datum.ellipsoid }

// WithOrdinates returns a copy moved to (x, y, z).
func (p GeocentricPoint) WithOrdinates(x, y, z float64) GeocentricPoint {
	p.x, p.y, p.z = x, y, z
	return p
}

// WithDatum returns a copy tagged with d, without converting the ordinates.
func (p GeocentricPoint) WithDatum(d Datum) GeocentricPoint {
	p.datum = orWGS84(d)
	return p
}

// WithEllipsoid returns a copy whose datum uses e, without converting the
// ordinates.
func (p GeocentricPoint) WithEllipsoid(e Ellipsoid) GeocentricPoint {
	p.datum = p.datum.WithEllipsoid(e)
	return p
}

// ToReference shifts the point to the WGS84 datum.
func (p GeocentricPoint) ToReference() (GeocentricPoint, error) {
	return p.datum.ToReference(p)
}

// ToDatum shifts the point to datum d by way of WGS84.
func (p GeocentricPoint) ToDatum(d Datum) (GeocentricPoint, error) {
	d = orWGS84(d)
	ref, err := p.ToReference()
	if err != nil {
		return GeocentricPoint{}, err
	}
	return d.FromReference(ref)
}

// ToGeodetic converts the point to latitude, longitude and ellipsoidal
// height on its datum's ellipsoid. The centre of the ellipsoid converts to
// latitude 90°, longitude 0° and height -b.
func (p GeocentricPoint) ToGeodetic() (GeodeticPoint, error) {
	e := p.datum.ellipsoid
	lat, lon, height, err := geocentricToGeodetic(p.x, p.y, p.z, e.A(), e.B(), e.ES(), geocentricMaxIter)
	if err != nil {
		return GeodeticPoint{}, err
	}
	return GeodeticPoint{lat: rad2deg(lat), lon: rad2deg(lon), height: height, datum: p.datum}, nil
}

// Params returns the point in the vocabulary accepted by
// NewGeocentricPointParams.
func (p GeocentricPoint) Params() Params {
	return Params{"x": p.x, "y": p.y, "z": p.z, "datum": p.datum.Params()}
}

// geocentricToGeodetic is the iterative algorithm developed by the Institut
// für Erdmessung, University of Hannover, July 1988. It iterates cos and sin
// of the latitude together with the height until the change in sin(latitude)
// falls below genau. Results are in radians.
func geocentricToGeodetic(x, y, z, a, b, es float64, maxIter int) (lat, lon, height float64, err error) {
	p := math.Sqrt(x*x + y*y) // distance from the polar axis
	rr := math.Sqrt(x*x + y*y + z*z)

	if p/a < genau {
		// on the polar axis
		lon = 0
		if rr/a < genau {
			return halfPi, 0, -b, nil
		}
	} else {
		// -Pi < lon <= Pi
		lon = math.Atan2(y, x)
	}

	ct := z / rr // sin of geocentric latitude
	st := p / rr // cos of geocentric latitude
	rx := 1 / math.Sqrt(1-es*(2-es)*st*st)
	cphi0 := st * (1 - es) * rx
	sphi0 := ct * rx

	var cphi, sphi float64
	for iter := 1; ; iter++ {
		rn := a / math.Sqrt(1-es*sphi0*sphi0)
		height = p*cphi0 + z*sphi0 - rn*(1-es*sphi0*sphi0)

		rk := es * rn / (rn + height)
		rx = 1 / math.Sqrt(1-rk*(2-rk)*st*st)
		cphi = st * (1 - rk) * rx
		sphi = ct * rx
		sdphi := sphi*cphi0 - cphi*sphi0
		cphi0, sphi0 = cphi, sphi

		if sdphi*sdphi <= genau2 {
			break
		}
		if iter >= maxIter {
			logger.WithFields(logger.Fields{
				"x": x, "y": y, "z": z, "iterations": iter,
			}).Debug("geocentric to geodetic: latitude did not converge")
			return 0, 0, 0, errors.Wrapf(ErrConvergence, "geocentric to geodetic: latitude of (%g, %g, %g) after %d iterations", x, y, z, iter)
		}
	}

	lat = math.Atan(sphi / math.Abs(cphi))
	return lat, lon, height, nil
}

func orWGS84(d Datum) Datum {
	if d == (Datum{}) {
		return WGS84Datum
	}
	return d
}

func toDatum(owner string, v interface{}) (Datum, error) {
	switch d := v.(type) {
	case Datum:
		return orWGS84(d), nil
	case *Datum:
		return orWGS84(*d), nil
	}
	p, err := toParams(owner, "datum", v)
	if err != nil {
		return Datum{}, err
	}
	return NewDatum(p)
}
