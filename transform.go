package geotrans

import (
	"github.com/cockroachdb/errors"
)

// CRS is a coordinate reference system: a datum and the projection that
// maps it to planar coordinates. A nil Projection means DefaultLatLon; the
// zero Datum means WGS84.
type CRS struct {
	Datum      Datum
	Projection Projection
}

func (c CRS) projection() Projection {
	if c.Projection == nil {
		return DefaultLatLon
	}
	return c.Projection
}

// Project converts a geodetic point into this reference system: shifted to
// its datum, then projected.
func (c CRS) Project(p GeodeticPoint) (ProjectedPoint, error) {
	g, err := p.ToDatum(c.Datum)
	if err != nil {
		return ProjectedPoint{}, err
	}
	return c.projection().Forward(g)
}

// Point constructs a projected point in this reference system from named
// coordinate parts.
func (c CRS) Point(coords Params) (ProjectedPoint, error) {
	return NewProjectedPoint(c.projection(), coords, c.Datum)
}

// Transform converts p from one reference system to another: inverse
// through from's projection, datum shift from from.Datum to to.Datum by way
// of WGS84 (skipped when they are equal) and forward through to's projection.
func Transform(from, to CRS, p ProjectedPoint) (ProjectedPoint, error) {
	p = p.WithDatum(from.Datum)
	if p.proj == nil {
		p.proj = from.projection()
	}
	g, err := from.projection().Inverse(p)
	if err != nil {
		return ProjectedPoint{}, errors.Wrap(err, "transform: inverse")
	}
	if g, err = g.ToDatum(to.Datum); err != nil {
		return ProjectedPoint{}, errors.Wrap(err, "transform: datum shift")
	}
	out, err := to.projection().Forward(g)
	if err != nil {
		return ProjectedPoint{}, errors.Wrap(err, "transform: forward")
	}
	return out, nil
}
