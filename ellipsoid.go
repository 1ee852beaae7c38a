package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
)

// shape records which second parameter defines an ellipsoid.
type shape byte

const (
	shapeB shape = iota + 1
	shapeF
	shapeRF
)

// Ellipsoid is a reference ellipsoid defined by its semi-major axis and one
// of semi-minor axis, flattening or reciprocal flattening. Whichever second
// parameter was supplied is stored; the other two are derived on demand.
//
// Ellipsoid is a value type. The With methods return modified copies.
type Ellipsoid struct {
	a       float64
	second  float64 // b, f or rf according to defined
	defined shape
	code    string
	name    string
}

var ellipsoidParams = aliasTable{
	"a":    "a",
	"b":    "b",
	"f":    "f",
	"rf":   "rf",
	"code": "code",
	"name": "name",
}

// NewEllipsoid constructs an ellipsoid from a parameter mapping with the keys
// a, b, f, rf, code and name. An empty mapping gives the WGS84 ellipsoid.
func NewEllipsoid(p Params) (Ellipsoid, error) {
	if len(p) == 0 {
		return WGS84Ellipsoid, nil
	}
	vals, err := ellipsoidParams.resolve(p, "ellipsoid")
	if err != nil {
		return Ellipsoid{}, err
	}

	var e Ellipsoid
	av, ok := vals["a"]
	if !ok {
		return Ellipsoid{}, errors.Wrap(ErrConfiguration, "ellipsoid: semi-major axis a is required")
	}
	if e.a, err = toFloat("ellipsoid", "a", av); err != nil {
		return Ellipsoid{}, err
	}

	for _, k := range []struct {
		name string
		s    shape
	}{{"b", shapeB}, {"f", shapeF}, {"rf", shapeRF}} {
		v, ok := vals[k.name]
		if !ok {
			continue
		}
		if e.defined != 0 {
			return Ellipsoid{}, errors.Wrap(ErrConfiguration, "ellipsoid: only one of b, f and rf may be given")
		}
		if e.second, err = toFloat("ellipsoid", k.name, v); err != nil {
			return Ellipsoid{}, err
		}
		e.defined = k.s
	}
	if e.defined == 0 {
		// a alone describes a sphere.
		e.second = e.a
		e.defined = shapeB
	}

	if v, ok := vals["code"]; ok {
		if e.code, err = toString("ellipsoid", "code", v); err != nil {
			return Ellipsoid{}, err
		}
	}
	if v, ok := vals["name"]; ok {
		if e.name, err = toString("ellipsoid", "name", v); err != nil {
			return Ellipsoid{}, err
		}
	}
	return e, nil
}

// NewEllipsoidAB returns the ellipsoid with semi-major axis a and semi-minor
// axis b, in metres.
func NewEllipsoidAB(a, b float64) Ellipsoid {
	return Ellipsoid{a: a, second: b, defined: shapeB}
}

// NewEllipsoidARF returns the ellipsoid with semi-major axis a and reciprocal
// flattening rf.
func NewEllipsoidARF(a, rf float64) Ellipsoid {
	return Ellipsoid{a: a, second: rf, defined: shapeRF}
}

// NewSphere returns the sphere of radius r.
func NewSphere(r float64) Ellipsoid {
	return NewEllipsoidAB(r, r)
}

// Code returns the short name, e.g. "bessel".
func (e Ellipsoid) Code() string { return e.code }

// Name returns the long name, e.g. "Bessel 1841".
func (e Ellipsoid) Name() string { return e.name }

// WithCode returns a copy with the short name set.
func (e Ellipsoid) WithCode(code string) Ellipsoid {
	e.code = code
	return e
}

// WithName returns a copy with the long name set.
func (e Ellipsoid) WithName(name string) Ellipsoid {
	e.name = name
	return e
}

// WithA returns a copy with the semi-major axis replaced. The defining second
// parameter is kept as given.
func (e Ellipsoid) WithA(a float64) Ellipsoid {
	e.a = a
	return e
}

// WithB returns a copy defined by semi-minor axis b.
func (e Ellipsoid) WithB(b float64) Ellipsoid {
	e.second, e.defined = b, shapeB
	return e
}

// WithF returns a copy defined by flattening f.
func (e Ellipsoid) WithF(f float64) Ellipsoid {
	e.second, e.defined = f, shapeF
	return e
}

// WithRF returns a copy defined by reciprocal flattening rf.
func (e Ellipsoid) WithRF(rf float64) Ellipsoid {
	e.second, e.defined = rf, shapeRF
	return e
}

// A returns the semi-major axis (equatorial radius) in metres.
func (e Ellipsoid) A() float64 { return e.a }

// B returns the semi-minor axis (polar radius) in metres.
func (e Ellipsoid) B() float64 {
	switch e.defined {
	case shapeF:
		return e.a * (1 - e.second)
	case shapeRF:
		return e.a * (1 - 1/e.second)
	}
	return e.second
}

// F returns the flattening (a-b)/a.
func (e Ellipsoid) F() float64 {
	switch e.defined {
	case shapeF:
		return e.second
	case shapeRF:
		return 1 / e.second
	}
	return (e.a - e.second) / e.a
}

// RF returns the reciprocal flattening. It is +Inf for a sphere.
func (e Ellipsoid) RF() float64 {
	switch e.defined {
	case shapeF:
		return 1 / e.second
	case shapeRF:
		return e.second
	}
	return e.a / (e.a - e.second)
}

// ES returns the first eccentricity squared.
func (e Ellipsoid) ES() float64 {
	if e.defined == shapeB {
		a2 := e.a * e.a
		return (a2 - e.second*e.second) / a2
	}
	f := e.F()
	return 2*f - f*f
}

// E returns the first eccentricity.
func (e Ellipsoid) E() float64 {
	return math.Sqrt(e.ES())
}

// EP2 returns the second eccentricity squared, es/(1-es).
func (e Ellipsoid) EP2() float64 {
	es := e.ES()
	return es / (1 - es)
}

// IsSphere reports whether the ellipsoid has zero eccentricity.
func (e Ellipsoid) IsSphere() bool {
	return e.ES() == 0
}

// Params returns the ellipsoid in the vocabulary accepted by NewEllipsoid.
func (e Ellipsoid) Params() Params {
	p := Params{"a": e.a}
	switch e.defined {
	case shapeB:
		p["b"] = e.second
	case shapeF:
		p["f"] = e.second
	case shapeRF:
		p["rf"] = e.second
	}
	if e.code != "" {
		p["code"] = e.code
	}
	if e.name != "" {
		p["name"] = e.name
	}
	return p
}
