package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
)

// CylindricalEqualArea is the normal aspect cylindrical equal area
// projection on a sphere of radius a. Only the spherical form is provided;
// an ellipsoid's eccentricity is ignored.
type CylindricalEqualArea struct {
	x0, y0 float64
	lon0   float64    // central meridian, radians
	latTS  float64    // latitude of true scale, radians
	deg    [2]float64 // lon0, lat_ts in degrees, as configured
	fig    figure
}

var ceaParams = mergeAliases(figureParams, aliasTable{
	"x0":     "x0",
	"y0":     "y0",
	"lon0":   "lon0",
	"long0":  "lon0",
	"lat_ts": "lat_ts",
})

var ceaParts = aliasTable{
	"x": "x", "0": "x",
	"y": "y", "1": "y",
}

// NewCylindricalEqualArea constructs the projection from the keys x0, y0,
// lon0 and lat_ts (degrees) and the ellipsoid keys a, es, b, f, rf and ellps.
// When no ellipsoid is given the radius is the semi-major axis of each
// point's datum.
func NewCylindricalEqualArea(p Params) (*CylindricalEqualArea, error) {
	const owner = "cea"
	vals, err := ceaParams.resolve(p, owner)
	if err != nil {
		return nil, err
	}
	c := &CylindricalEqualArea{}
	if c.fig, err = resolveFigure(owner, vals); err != nil {
		return nil, err
	}
	if c.x0, err = floatParam(owner, vals, "x0", 0); err != nil {
		return nil, err
	}
	if c.y0, err = floatParam(owner, vals, "y0", 0); err != nil {
		return nil, err
	}
	var lon0, latTS float64
	if lon0, err = floatParam(owner, vals, "lon0", 0); err != nil {
		return nil, err
	}
	if latTS, err = floatParam(owner, vals, "lat_ts", 0); err != nil {
		return nil, err
	}
	if math.Abs(latTS) >= 90 {
		return nil, errors.Wrapf(ErrConfiguration, "%s: lat_ts %g° must lie strictly between -90 and 90", owner, latTS)
	}
	c.deg = [2]float64{lon0, latTS}
	c.lon0, c.latTS = deg2rad(lon0), deg2rad(latTS)
	return c, nil
}

// Kind returns KindCEA.
func (c *CylindricalEqualArea) Kind() Kind { return KindCEA }

// Name returns the long name of the projection.
func (c *CylindricalEqualArea) Name() string { return "Cylindrical Equal Area" }

// CoordinateNames returns x and y.
func (c *CylindricalEqualArea) CoordinateNames() []string { return []string{"x", "y"} }

func (c *CylindricalEqualArea) parts() aliasTable { return ceaParts }

// Params returns the projection parameters.
func (c *CylindricalEqualArea) Params() Params {
	p := Params{
		"x0":     c.x0,
		"y0":     c.y0,
		"lon0":   c.deg[0],
		"lat_ts": c.deg[1],
	}
	c.fig.params(p)
	return p
}

// Forward projects p.
func (c *CylindricalEqualArea) Forward(p GeodeticPoint) (ProjectedPoint, error) {
	a, _ := c.fig.of(p.datum)
	lat, lon := deg2rad(p.lat), deg2rad(p.lon)
	dlon := adjustLon(lon - c.lon0)
	cosTS := math.Cos(c.latTS)
	return ProjectedPoint{
		coords: map[string]float64{
			"x": c.x0 + a*dlon*cosTS,
			"y": c.y0 + a*math.Sin(lat)/cosTS,
		},
		proj:  c,
		datum: orWGS84(p.datum),
	}, nil
}

// Inverse converts p back to latitude and longitude.
func (c *CylindricalEqualArea) Inverse(p ProjectedPoint) (GeodeticPoint, error) {
	x, y, err := p.xy()
	if err != nil {
		return GeodeticPoint{}, err
	}
	a, _ := c.fig.of(p.datum)
	x -= c.x0
	y -= c.y0
	cosTS := math.Cos(c.latTS)
	lon := adjustLon(c.lon0 + x/(a*cosTS))
	lat := math.Asin(y / a * cosTS)
	if math.IsNaN(lat) {
		return GeodeticPoint{}, errors.Wrapf(ErrOutOfRange, "%s: northing %g is beyond the pole", c.Name(), y+c.y0)
	}
	return NewGeodeticPoint(rad2deg(lat), rad2deg(lon), 0, p.datum), nil
}
