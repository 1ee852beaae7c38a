package geotrans

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind identifies a projection algorithm.
type Kind byte

// Projection kinds
const (
	KindInvalid Kind = iota
	KindLatLon
	KindCEA
	KindTransverseMercator
	KindUTM
)

func (k Kind) String() string {
	switch k {
	case KindLatLon:
		return "latlon"
	case KindCEA:
		return "cea"
	case KindTransverseMercator:
		return "tmerc"
	case KindUTM:
		return "utm"
	}
	return "invalid"
}

// ParseKind returns the projection kind with the given name: latlon (or
// longlat), cea, tmerc or utm.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latlon", "longlat", "latlong", "lonlat":
		return KindLatLon, nil
	case "cea":
		return KindCEA, nil
	case "tmerc":
		return KindTransverseMercator, nil
	case "utm":
		return KindUTM, nil
	}
	return KindInvalid, errors.Wrapf(ErrUnknownParameter, "projection %q is not supported; supported projections are latlon, cea, tmerc, utm", name)
}

// Projection converts geodetic points to named planar coordinates and back.
// The set of implementations is closed: LatLon, CylindricalEqualArea,
// TransverseMercator and UTM.
//
// Projections are immutable once constructed and safe for concurrent use.
type Projection interface {
	// Kind returns the projection algorithm.
	Kind() Kind
	// Name returns the long name of the projection.
	Name() string
	// Forward projects a geodetic point.
	Forward(GeodeticPoint) (ProjectedPoint, error)
	// Inverse converts a projected point back to a geodetic point in the
	// projected point's datum.
	Inverse(ProjectedPoint) (GeodeticPoint, error)
	// CoordinateNames returns the canonical names of the coordinate parts,
	// in order.
	CoordinateNames() []string
	// Params returns the projection in the vocabulary accepted by its
	// constructor.
	Params() Params

	parts() aliasTable
}

// NewProjection constructs a projection of the named kind from p.
func NewProjection(kind string, p Params) (Projection, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindLatLon:
		l, err := NewLatLon(p)
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindCEA:
		c, err := NewCylindricalEqualArea(p)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindTransverseMercator:
		t, err := NewTransverseMercator(p)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindUTM:
		u, err := NewUTM(p)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, errors.Wrapf(ErrUnknownParameter, "projection kind %s", k)
}

// figure is the ellipsoid shape a projection works on. When fromPoint is
// set, no shape was configured and each conversion uses the ellipsoid of the
// point's datum.
type figure struct {
	a, es     float64
	fromPoint bool
}

// projection keys that describe the ellipsoid
var figureParams = aliasTable{
	"a":         "a",
	"es":        "es",
	"b":         "b",
	"f":         "f",
	"rf":        "rf",
	"ellps":     "ellps",
	"ellipsoid": "ellps",
}

// resolveFigure resolves the ellipsoid in order: a and es given directly;
// a with one of b, f or rf (a alone is a sphere), or ellps; otherwise the
// point being converted. Mixing sources is an error.
func resolveFigure(owner string, vals map[string]interface{}) (figure, error) {
	av, hasA := vals["a"]
	esv, hasES := vals["es"]
	ev, hasEllps := vals["ellps"]
	var second []string
	for _, k := range []string{"b", "f", "rf"} {
		if _, ok := vals[k]; ok {
			second = append(second, k)
		}
	}

	if hasEllps {
		if hasA || hasES || len(second) > 0 {
			return figure{}, errors.Wrapf(ErrConfiguration, "%s: ellps may not be combined with a, es, b, f or rf", owner)
		}
		e, err := toEllipsoid(ev)
		if err != nil {
			return figure{}, err
		}
		return figure{a: e.A(), es: e.ES()}, nil
	}
	if !hasA {
		if hasES || len(second) > 0 {
			return figure{}, errors.Wrapf(ErrConfiguration, "%s: ellipsoid parameters given without semi-major axis a", owner)
		}
		return figure{fromPoint: true}, nil
	}

	a, err := toFloat(owner, "a", av)
	if err != nil {
		return figure{}, err
	}
	if hasES {
		if len(second) > 0 {
			return figure{}, errors.Wrapf(ErrConfiguration, "%s: es may not be combined with %s", owner, strings.Join(second, ", "))
		}
		es, err := toFloat(owner, "es", esv)
		if err != nil {
			return figure{}, err
		}
		return figure{a: a, es: es}, nil
	}

	ep := Params{"a": a}
	for _, k := range second {
		ep[k] = vals[k]
	}
	e, err := NewEllipsoid(ep)
	if err != nil {
		return figure{}, errors.Wrap(err, owner)
	}
	return figure{a: e.A(), es: e.ES()}, nil
}

// of returns the shape to use for a point in datum d.
func (f figure) of(d Datum) (a, es float64) {
	if f.fromPoint {
		e := d.ellipsoid
		return e.A(), e.ES()
	}
	return f.a, f.es
}

func (f figure) params(p Params) {
	if !f.fromPoint {
		p["a"] = f.a
		p["es"] = f.es
	}
}

// mergeAliases returns a table holding the entries of all tables.
func mergeAliases(tables ...aliasTable) aliasTable {
	out := aliasTable{}
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// floatParam reads an optional numeric parameter, returning def when absent.
func floatParam(owner string, vals map[string]interface{}, name string, def float64) (float64, error) {
	v, ok := vals[name]
	if !ok {
		return def, nil
	}
	return toFloat(owner, name, v)
}
