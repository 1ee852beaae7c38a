package geotrans

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
)

// ProjectedPoint is a coordinate in a projection: a set of named parts such
// as x and y, the projection they belong to and the datum of the geodetic
// point they were projected from.
type ProjectedPoint struct {
	coords map[string]float64
	proj   Projection
	datum  Datum
}

// NewProjectedPoint constructs a point in proj from the named parts in
// coords. Each name must be a part name or alias declared by proj. The zero
// Datum stands for WGS84.
func NewProjectedPoint(proj Projection, coords Params, d Datum) (ProjectedPoint, error) {
	if proj == nil {
		return ProjectedPoint{}, errors.Wrap(ErrConfiguration, "projected point: no projection")
	}
	owner := proj.Name() + " point"
	vals, err := proj.parts().resolve(coords, owner)
	if err != nil {
		return ProjectedPoint{}, err
	}
	pp := ProjectedPoint{coords: make(map[string]float64, len(vals)), proj: proj, datum: orWGS84(d)}
	for name, v := range vals {
		if pp.coords[name], err = toFloat(owner, name, v); err != nil {
			return ProjectedPoint{}, err
		}
	}
	return pp, nil
}

// Get returns the named coordinate part. The name may be any alias the
// projection declares.
func (p ProjectedPoint) Get(name string) (float64, error) {
	if p.proj == nil {
		return 0, errors.Wrap(ErrConfiguration, "projected point: no projection")
	}
	canonical, ok := p.proj.parts().canonical(name)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownParameter, "%s point: coordinate %q is not recognised; supported coordinates are %v",
			p.proj.Name(), name, p.proj.CoordinateNames())
	}
	v, ok := p.coords[canonical]
	if !ok {
		return 0, errors.Wrapf(ErrConfiguration, "%s point: coordinate %q is not set", p.proj.Name(), canonical)
	}
	return v, nil
}

// Has reports whether the named coordinate part is set.
func (p ProjectedPoint) Has(name string) bool {
	if p.proj == nil {
		return false
	}
	canonical, ok := p.proj.parts().canonical(name)
	if !ok {
		return false
	}
	_, ok = p.coords[canonical]
	return ok
}

// Parts returns a copy of the coordinate parts under their canonical names.
func (p ProjectedPoint) Parts() Params {
	out := make(Params, len(p.coords))
	for k, v := range p.coords {
		out[k] = v
	}
	return out
}

// Names returns the canonical names of the parts that are set, sorted.
func (p ProjectedPoint) Names() []string {
	out := make([]string, 0, len(p.coords))
	for k := range p.coords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Projection returns the projection the point belongs to.
func (p ProjectedPoint) Projection() Projection { return p.proj }

// Datum returns the datum of the geodetic point the coordinates represent.
func (p ProjectedPoint) Datum() Datum { return p.datum }

// WithDatum returns a copy tagged with d.
func (p ProjectedPoint) WithDatum(d Datum) ProjectedPoint {
	p.datum = orWGS84(d)
	return p
}

// Inverse converts the point back to a geodetic point through its
// projection.
func (p ProjectedPoint) Inverse() (GeodeticPoint, error) {
	if p.proj == nil {
		return GeodeticPoint{}, errors.Wrap(ErrConfiguration, "projected point: no projection")
	}
	return p.proj.Inverse(p)
}

// OrbPoint returns the planar position, x then y. Lat/lon points return
// longitude then latitude. Unset parts are zero.
func (p ProjectedPoint) OrbPoint() orb.Point {
	if p.proj != nil && p.proj.Kind() == KindLatLon {
		return orb.Point{p.coords["lon"], p.coords["lat"]}
	}
	return orb.Point{p.coords["x"], p.coords["y"]}
}

func (p ProjectedPoint) xy() (x, y float64, err error) {
	if x, err = p.Get("x"); err != nil {
		return 0, 0, err
	}
	if y, err = p.Get("y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
