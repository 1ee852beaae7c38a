package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// GeodeticPoint is a latitude and longitude in degrees with an ellipsoidal
// height in metres, tied to the datum it is expressed in.
//
// The latitude range is not checked at construction, only when the point is
// converted.
type GeodeticPoint struct {
	lat, lon float64
	height   float64
	datum    Datum
}

// Latitudes this far beyond a pole are taken as rounding noise and clamped.
const poleTolerance = 1.001 * halfPi

var geodeticParams = aliasTable{
	"0": "lat", "lat": "lat", "latitude": "lat",
	"1": "lon", "lon": "lon", "long": "lon", "longitude": "lon",
	"2": "height", "height": "height", "h": "height",
	"latrad": "latrad",
	"lonrad": "lonrad",
	"datum":  "datum",
}

// NewGeodeticPoint returns the point at lat, lon (degrees) and height
// (metres) in datum d. The zero Datum stands for WGS84.
func NewGeodeticPoint(lat, lon, height float64, d Datum) GeodeticPoint {
	return GeodeticPoint{lat: lat, lon: lon, height: height, datum: orWGS84(d)}
}

// GeodeticFromLatLng returns the point at ll with the given height in datum d.
func GeodeticFromLatLng(ll s2.LatLng, height float64, d Datum) GeodeticPoint {
	return NewGeodeticPoint(ll.Lat.Degrees(), ll.Lng.Degrees(), height, d)
}

// NewGeodeticPointParams constructs a point from the keys lat|latitude|0,
// lon|long|longitude|1 (degrees), latrad and lonrad (radians), height|h|2 and
// datum. Latitude and longitude are required, in exactly one unit each.
func NewGeodeticPointParams(p Params) (GeodeticPoint, error) {
	const owner = "geodetic point"
	vals, err := geodeticParams.resolve(p, owner)
	if err != nil {
		return GeodeticPoint{}, err
	}

	angle := func(deg, rad string) (float64, error) {
		dv, hasDeg := vals[deg]
		rv, hasRad := vals[rad]
		switch {
		case hasDeg && hasRad:
			return 0, errors.Wrapf(ErrConfiguration, "%s: both %s and %s given", owner, deg, rad)
		case hasDeg:
			return toFloat(owner, deg, dv)
		case hasRad:
			r, err := toFloat(owner, rad, rv)
			return rad2deg(r), err
		}
		return 0, errors.Wrapf(ErrConfiguration, "%s: %s is required", owner, deg)
	}

	var pt GeodeticPoint
	if pt.lat, err = angle("lat", "latrad"); err != nil {
		return GeodeticPoint{}, err
	}
	if pt.lon, err = angle("lon", "lonrad"); err != nil {
		return GeodeticPoint{}, err
	}
	if v, ok := vals["height"]; ok {
		if pt.height, err = toFloat(owner, "height", v); err != nil {
			return GeodeticPoint{}, err
		}
	}
	pt.datum = WGS84Datum
	if v, ok := vals["datum"]; ok {
		if pt.datum, err = toDatum(owner, v); err != nil {
			return GeodeticPoint{}, err
		}
	}
	return pt, nil
}

// Lat returns the latitude in degrees.
func (p GeodeticPoint) Lat() float64 { return p.lat }

// Lon returns the longitude in degrees.
func (p GeodeticPoint) Lon() float64 { return p.lon }

// Height returns the ellipsoidal height in metres.
func (p GeodeticPoint) Height() float64 { return p.height }

// LatRadians returns the latitude in radians.
func (p GeodeticPoint) LatRadians() float64 { return deg2rad(p.lat) }

// LonRadians returns the longitude in radians.
func (p GeodeticPoint) LonRadians() float64 { return deg2rad(p.lon) }

// LatLng returns the latitude and longitude as an s2.LatLng.
func (p GeodeticPoint) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(p.lat) * s1.Degree, Lng: s1.Angle(p.lon) * s1.Degree}
}

// OrbPoint returns the point in GeoJSON axis order, longitude first.
func (p GeodeticPoint) OrbPoint() orb.Point {
	return orb.Point{p.lon, p.lat}
}

// Datum returns the datum the point is expressed in.
func (p GeodeticPoint) Datum() Datum { return p.datum }

// Ellipsoid returns the ellipsoid of the point's datum.
func (p GeodeticPoint) Ellipsoid() Ellipsoid { return p.datum.ellipsoid }

// WithOrdinates returns a copy moved to lat, lon and height.
func (p GeodeticPoint) WithOrdinates(lat, lon, height float64) GeodeticPoint {
	p.lat, p.lon, p.height = lat, lon, height
	return p
}

// WithDatum returns a copy tagged with d, without converting the ordinates.
func (p GeodeticPoint) WithDatum(d Datum) GeodeticPoint {
	p.datum = orWGS84(d)
	return p
}

// WithEllipsoid returns a copy whose datum uses e, without converting the
// ordinates.
func (p GeodeticPoint) WithEllipsoid(e Ellipsoid) GeodeticPoint {
	p.datum = p.datum.WithEllipsoid(e)
	return p
}

// ToGeocentric converts the point to earth-centred coordinates on its
// datum's ellipsoid.
func (p GeodeticPoint) ToGeocentric() (GeocentricPoint, error) {
	e := p.datum.ellipsoid
	x, y, z, err := geodeticToGeocentric(deg2rad(p.lat), deg2rad(p.lon), p.height, e.A(), e.ES())
	if err != nil {
		return GeocentricPoint{}, errors.Wrapf(err, "geodetic point (%g, %g)", p.lat, p.lon)
	}
	return GeocentricPoint{x: x, y: y, z: z, datum: p.datum}, nil
}

// ToReference converts the point to the WGS84 datum.
func (p GeodeticPoint) ToReference() (GeodeticPoint, error) {
	return p.ToDatum(WGS84Datum)
}

// ToDatum converts the point to datum d, by way of geocentric coordinates and
// WGS84. Points already in an equal datum are returned retagged.
func (p GeodeticPoint) ToDatum(d Datum) (GeodeticPoint, error) {
	d = orWGS84(d)
	if p.datum.Equal(d) {
		return p.WithDatum(d), nil
	}
	gc, err := p.ToGeocentric()
	if err != nil {
		return GeodeticPoint{}, err
	}
	if gc, err = gc.ToDatum(d); err != nil {
		return GeodeticPoint{}, err
	}
	return gc.ToGeodetic()
}

// Params returns the point in the vocabulary accepted by
// NewGeodeticPointParams.
func (p GeodeticPoint) Params() Params {
	return Params{"lat": p.lat, "lon": p.lon, "height": p.height, "datum": p.datum.Params()}
}

// geodeticToGeocentric takes latitude and longitude in radians.
func geodeticToGeocentric(lat, lon, height, a, es float64) (x, y, z float64, err error) {
	switch {
	case math.IsNaN(lat):
		return 0, 0, 0, errors.Wrap(ErrOutOfRange, "latitude is NaN")
	case lat < -halfPi && lat > -poleTolerance:
		lat = -halfPi
	case lat > halfPi && lat < poleTolerance:
		lat = halfPi
	case lat < -halfPi || lat > halfPi:
		return 0, 0, 0, errors.Wrapf(ErrOutOfRange, "latitude %g° outside -90..90", rad2deg(lat))
	}
	lon = normalizeLon(lon)

	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	rn := a / math.Sqrt(1-es*sinLat*sinLat)
	x = (rn + height) * cosLat * cosLon
	y = (rn + height) * cosLat * sinLon
	z = (rn*(1-es) + height) * sinLat
	return x, y, z, nil
}
