package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
)

// DatumType is the kind of transform a datum applies to reach WGS84.
type DatumType byte

// Datum types
const (
	DatumInvalid DatumType = iota
	Datum3Term             // geocentric translation
	Datum7Term             // Bursa-Wolf: translation, rotation and scale
)

func (t DatumType) String() string {
	switch t {
	case Datum3Term:
		return "3-term"
	case Datum7Term:
		return "7-term"
	}
	return "invalid"
}

// Datum is a reference ellipsoid together with the transform that takes
// geocentric coordinates expressed in it to the WGS84 reference frame.
//
// The terms are, in order: Dx, Dy, Dz translations in metres, then for 7-term
// datums Rx, Ry, Rz rotations in seconds of arc and the scale change in parts
// per million. They are held as supplied and converted when used.
type Datum struct {
	typ       DatumType
	terms     [7]float64
	ellipsoid Ellipsoid
	code      string
	name      string
}

// datum term names, in term order
var datumTermNames = [7]string{"dx", "dy", "dz", "rx", "ry", "rz", "m"}

var datumParams = aliasTable{
	"0": "dx", "x": "dx", "dx": "dx",
	"1": "dy", "y": "dy", "dy": "dy",
	"2": "dz", "z": "dz", "dz": "dz",
	"3": "rx", "a": "rx", "rx": "rx",
	"4": "ry", "b": "ry", "ry": "ry",
	"5": "rz", "g": "rz", "rz": "rz",
	"6": "m", "s": "m", "m": "m",
	"towgs84":   "towgs84",
	"ellps":     "ellps",
	"ellipsoid": "ellps",
	"code":      "code",
	"name":      "name",
}

// NewDatum constructs a datum from a parameter mapping.
//
// Terms may be given individually by index (0-6) or name (x|dx, y|dy, z|dz,
// a|rx, b|ry, g|rz, s|m), or together as towgs84, a numeric list or comma
// separated string. The term count is the highest index supplied plus one;
// counts up to three make a 3-term datum, seven a 7-term datum, and any other
// count is an error. Missing terms are zero. The ellipsoid is given as ellps
// or ellipsoid, either an Ellipsoid or its parameters, and defaults to
// WGS84. An empty mapping gives the WGS84 datum.
func NewDatum(p Params) (Datum, error) {
	vals, err := datumParams.resolve(p, "datum")
	if err != nil {
		return Datum{}, err
	}

	var terms []float64
	var hasEllps bool
	v, hasList := vals["towgs84"]
	if hasList {
		if terms, err = toFloats("datum", "towgs84", v); err != nil {
			return Datum{}, err
		}
	}
	for i, name := range datumTermNames {
		v, ok := vals[name]
		if !ok {
			continue
		}
		if hasList {
			return Datum{}, errors.Wrapf(ErrConfiguration, "datum: %s given alongside towgs84", name)
		}
		f, err := toFloat("datum", name, v)
		if err != nil {
			return Datum{}, err
		}
		for len(terms) <= i {
			terms = append(terms, 0)
		}
		terms[i] = f
	}

	ellps := WGS84Ellipsoid
	v, hasEllps = vals["ellps"]
	if hasEllps {
		if ellps, err = toEllipsoid(v); err != nil {
			return Datum{}, err
		}
	}

	d, err := NewDatumFromTerms(terms, ellps)
	if err != nil {
		return Datum{}, err
	}
	if len(terms) == 0 && !hasEllps {
		d.code, d.name = WGS84Datum.code, WGS84Datum.name
	}
	if v, ok := vals["code"]; ok {
		if d.code, err = toString("datum", "code", v); err != nil {
			return Datum{}, err
		}
	}
	if v, ok := vals["name"]; ok {
		if d.name, err = toString("datum", "name", v); err != nil {
			return Datum{}, err
		}
	}
	return d, nil
}

// NewDatumFromTerms constructs a datum from 3 or 7 transform terms. No terms
// gives the identity transform.
func NewDatumFromTerms(terms []float64, ellipsoid Ellipsoid) (Datum, error) {
	d := Datum{ellipsoid: ellipsoid}
	switch n := len(terms); {
	case n <= 3:
		d.typ = Datum3Term
	case n == 7:
		d.typ = Datum7Term
	default:
		return Datum{}, errors.Wrapf(ErrConfiguration, "datum: invalid term count %d; 3 or 7 terms supported", n)
	}
	copy(d.terms[:], terms)
	return d, nil
}

func toEllipsoid(v interface{}) (Ellipsoid, error) {
	switch e := v.(type) {
	case Ellipsoid:
		return e, nil
	case *Ellipsoid:
		return *e, nil
	}
	p, err := toParams("datum", "ellps", v)
	if err != nil {
		return Ellipsoid{}, err
	}
	return NewEllipsoid(p)
}

// Type returns the transform type.
func (d Datum) Type() DatumType { return d.typ }

// Terms returns a copy of the 3 or 7 transform terms.
func (d Datum) Terms() []float64 {
	if d.typ == Datum7Term {
		return append([]float64(nil), d.terms[:]...)
	}
	return append([]float64(nil), d.terms[:3]...)
}

// Ellipsoid returns the datum's ellipsoid.
func (d Datum) Ellipsoid() Ellipsoid { return d.ellipsoid }

// Code returns the short name, e.g. "OSGB36".
func (d Datum) Code() string { return d.code }

// Name returns the long name.
func (d Datum) Name() string { return d.name }

// WithCode returns a copy with the short name set.
func (d Datum) WithCode(code string) Datum {
	d.code = code
	return d
}

// WithName returns a copy with the long name set.
func (d Datum) WithName(name string) Datum {
	d.name = name
	return d
}

// WithEllipsoid returns a copy with the ellipsoid replaced.
func (d Datum) WithEllipsoid(e Ellipsoid) Datum {
	d.ellipsoid = e
	return d
}

// IsIdentity reports whether the datum leaves coordinates unchanged on the
// way to WGS84.
func (d Datum) IsIdentity() bool {
	return d.typ == Datum3Term && d.terms == [7]float64{}
}

// Equal reports whether two datums describe the same transform and
// ellipsoid. Eccentricities within 5e-11 compare equal so that GRS80 and
// WGS84 are considered the same surface.
func (d Datum) Equal(o Datum) bool {
	if d.typ != o.typ || d.ellipsoid.A() != o.ellipsoid.A() {
		return false
	}
	if math.Abs(d.ellipsoid.ES()-o.ellipsoid.ES()) > 5e-11 {
		return false
	}
	return d.terms == o.terms
}

// Params returns the datum in the vocabulary accepted by NewDatum.
func (d Datum) Params() Params {
	p := Params{"ellps": d.ellipsoid.Params()}
	for i, v := range d.Terms() {
		p[datumTermNames[i]] = v
	}
	if d.code != "" {
		p["code"] = d.code
	}
	if d.name != "" {
		p["name"] = d.name
	}
	return p
}

// helmert returns the 7-term parameters in working units: metres, radians
// and a scale multiplier.
func (d Datum) helmert() (dx, dy, dz, rx, ry, rz, m float64) {
	secToRad := func(sec float64) float64 {
		return (s1.Angle(sec/3600) * s1.Degree).Radians()
	}
	return d.terms[0], d.terms[1], d.terms[2],
		secToRad(d.terms[3]), secToRad(d.terms[4]), secToRad(d.terms[5]),
		1 + d.terms[6]*1e-6
}

// ToReference converts a geocentric point expressed in this datum to the
// WGS84 reference frame. The result carries the WGS84 datum.
func (d Datum) ToReference(p GeocentricPoint) (GeocentricPoint, error) {
	var x, y, z float64
	switch d.typ {
	case Datum3Term:
		x = p.x + d.terms[0]
		y = p.y + d.terms[1]
		z = p.z + d.terms[2]
	case Datum7Term:
		dx, dy, dz, rx, ry, rz, m := d.helmert()
		x = m*(p.x-rz*p.y+ry*p.z) + dx
		y = m*(rz*p.x+p.y-rx*p.z) + dy
		z = m*(-ry*p.x+rx*p.y+p.z) + dz
	default:
		return GeocentricPoint{}, errors.Wrapf(ErrUnsupportedDatumType, "datum %q: type %s", d.code, d.typ)
	}
	return GeocentricPoint{x: x, y: y, z: z, datum: WGS84Datum}, nil
}

// FromReference converts a geocentric point in the WGS84 reference frame to
// this datum. The result carries this datum.
//
// For 7-term datums the rotation is undone with the same small-angle matrix
// transposed, so a round trip is exact only to second order in the rotation
// angles.
func (d Datum) FromReference(p GeocentricPoint) (GeocentricPoint, error) {
	var x, y, z float64
	switch d.typ {
	case Datum3Term:
		x = p.x - d.terms[0]
		y = p.y - d.terms[1]
		z = p.z - d.terms[2]
	case Datum7Term:
		dx, dy, dz, rx, ry, rz, m := d.helmert()
		xt := (p.x - dx) / m
		yt := (p.y - dy) / m
		zt := (p.z - dz) / m
		x = xt + rz*yt - ry*zt
		y = -rz*xt + yt + rx*zt
		z = ry*xt - rx*yt + zt
	default:
		return GeocentricPoint{}, errors.Wrapf(ErrUnsupportedDatumType, "datum %q: type %s", d.code, d.typ)
	}
	return GeocentricPoint{x: x, y: y, z: z, datum: d}, nil
}
