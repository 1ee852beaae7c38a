package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
	logger "github.com/sirupsen/logrus"
)

// Maximum number of footpoint latitude corrections after the first pass.
const tmMaxIter = 6

// TransverseMercator provides conversions between geodetic coordinates
// (latitude and longitude) and Transverse Mercator projection coordinates
// (easting and northing), using the series of Snyder, Map Projections: A
// Working Manual, USGS Professional Paper 1395, 1987.
type TransverseMercator struct {
	lat0, lon0 float64    // origin, radians
	origin     [2]float64 // lat0, lon0 in degrees, as configured
	x0, y0     float64    // false easting and northing, metres
	k0         float64    // scale factor on the central meridian
	ep2        float64    // second eccentricity squared, when configured
	hasEP2     bool

	fig    figure
	consts *tmConstants // nil when the ellipsoid comes from each point
}

// tmConstants are the values derived from the ellipsoid and origin.
type tmConstants struct {
	a, es, ep2     float64
	e0, e1, e2, e3 float64
	ml0            float64
	sphere         bool
}

var tmParams = mergeAliases(figureParams, aliasTable{
	"lat0":  "lat0",
	"lon0":  "lon0",
	"long0": "lon0",
	"x0":    "x0",
	"y0":    "y0",
	"k0":    "k0",
	"k":     "k0",
	"ep2":   "ep2",
})

var tmParts = aliasTable{
	"x": "x", "e": "x", "easting": "x",
	"y": "y", "n": "y", "northing": "y",
}

// NewTransverseMercator constructs the projection from the keys lat0, lon0
// (degrees), x0, y0, k0 and ep2 and the ellipsoid keys a, es, b, f, rf and
// ellps. Origin and false offsets default to zero and k0 to one. When no
// ellipsoid is given each conversion uses the ellipsoid of the point's datum.
func NewTransverseMercator(p Params) (*TransverseMercator, error) {
	const owner = "tmerc"
	vals, err := tmParams.resolve(p, owner)
	if err != nil {
		return nil, err
	}
	t := &TransverseMercator{}
	if t.fig, err = resolveFigure(owner, vals); err != nil {
		return nil, err
	}
	var lat0, lon0 float64
	for _, f := range []struct {
		name string
		dst  *float64
		def  float64
	}{
		{"lat0", &lat0, 0},
		{"lon0", &lon0, 0},
		{"x0", &t.x0, 0},
		{"y0", &t.y0, 0},
		{"k0", &t.k0, 1},
	} {
		if *f.dst, err = floatParam(owner, vals, f.name, f.def); err != nil {
			return nil, err
		}
	}
	if v, ok := vals["ep2"]; ok {
		if t.ep2, err = toFloat(owner, "ep2", v); err != nil {
			return nil, err
		}
		t.hasEP2 = true
	}
	if math.Abs(lat0) > 90 {
		return nil, errors.Wrapf(ErrConfiguration, "%s: lat0 %g° outside -90..90", owner, lat0)
	}
	if t.k0 <= 0 {
		return nil, errors.Wrapf(ErrConfiguration, "%s: scale factor k0 must be greater than zero", owner)
	}
	t.origin = [2]float64{lat0, lon0}
	t.lat0, t.lon0 = deg2rad(lat0), deg2rad(lon0)

	if !t.fig.fromPoint {
		c := t.derive(t.fig.a, t.fig.es)
		t.consts = &c
	}
	return t, nil
}

func (t *TransverseMercator) derive(a, es float64) tmConstants {
	c := tmConstants{
		a:      a,
		es:     es,
		e0:     e0fn(es),
		e1:     e1fn(es),
		e2:     e2fn(es),
		e3:     e3fn(es),
		sphere: es == 0,
	}
	c.ml0 = a * mlfn(c.e0, c.e1, c.e2, c.e3, t.lat0)
	if t.hasEP2 {
		c.ep2 = t.ep2
	} else {
		c.ep2 = es / (1 - es)
	}
	return c
}

func (t *TransverseMercator) constants(d Datum) tmConstants {
	if t.consts != nil {
		return *t.consts
	}
	return t.derive(t.fig.of(d))
}

// Kind returns KindTransverseMercator.
func (t *TransverseMercator) Kind() Kind { return KindTransverseMercator }

// Name returns the long name of the projection.
func (t *TransverseMercator) Name() string { return "Transverse Mercator" }

// CoordinateNames returns x and y.
func (t *TransverseMercator) CoordinateNames() []string { return []string{"x", "y"} }

func (t *TransverseMercator) parts() aliasTable { return tmParts }

// Params returns the projection parameters.
func (t *TransverseMercator) Params() Params {
	p := Params{
		"lat0": t.origin[0],
		"lon0": t.origin[1],
		"x0":   t.x0,
		"y0":   t.y0,
		"k0":   t.k0,
	}
	if t.hasEP2 {
		p["ep2"] = t.ep2
	}
	t.fig.params(p)
	return p
}

// Forward projects p to easting and northing.
func (t *TransverseMercator) Forward(p GeodeticPoint) (ProjectedPoint, error) {
	x, y, err := t.project(deg2rad(p.lat), deg2rad(p.lon), t.constants(p.datum))
	if err != nil {
		return ProjectedPoint{}, errors.Wrapf(err, "%s forward (%g, %g)", t.Name(), p.lat, p.lon)
	}
	return ProjectedPoint{
		coords: map[string]float64{"x": x, "y": y},
		proj:   t,
		datum:  orWGS84(p.datum),
	}, nil
}

// Inverse converts p back to latitude and longitude.
func (t *TransverseMercator) Inverse(p ProjectedPoint) (GeodeticPoint, error) {
	x, y, err := p.xy()
	if err != nil {
		return GeodeticPoint{}, err
	}
	lat, lon, err := t.unproject(x, y, t.constants(p.datum), tmMaxIter)
	if err != nil {
		return GeodeticPoint{}, errors.Wrapf(err, "%s inverse (%g, %g)", t.Name(), x, y)
	}
	return NewGeodeticPoint(rad2deg(lat), rad2deg(lon), 0, p.datum), nil
}

// project takes latitude and longitude in radians.
func (t *TransverseMercator) project(lat, lon float64, c tmConstants) (x, y float64, err error) {
	dlon := adjustLon(lon - t.lon0)
	sinPhi, cosPhi := math.Sincos(lat)

	if c.sphere {
		b := cosPhi * math.Sin(dlon)
		if math.Abs(math.Abs(b)-1) < epsln {
			return 0, 0, errors.WithStack(ErrProjectionSingularity)
		}
		x = 0.5*c.a*t.k0*math.Log((1+b)/(1-b)) + t.x0
		con := acosz(cosPhi * math.Cos(dlon) / math.Sqrt(1-b*b))
		if lat < 0 {
			con = -con
		}
		y = c.a*t.k0*(con-t.lat0) + t.y0
		return x, y, nil
	}

	al := cosPhi * dlon
	als := al * al
	cc := c.ep2 * cosPhi * cosPhi
	tq := math.Tan(lat)
	tt := tq * tq
	con := 1 - c.es*sinPhi*sinPhi
	n := c.a / math.Sqrt(con)
	ml := c.a * mlfn(c.e0, c.e1, c.e2, c.e3, lat)

	x = t.k0*n*al*(1+als/6*(1-tt+cc+als/20*(5-18*tt+tt*tt+72*cc-58*c.ep2))) + t.x0
	y = t.k0*(ml-c.ml0+n*tq*(als*(0.5+als/24*(5-tt+9*cc+4*cc*cc+als/30*(61-58*tt+tt*tt+600*cc-330*c.ep2))))) + t.y0
	return x, y, nil
}

// unproject returns latitude and longitude in radians.
func (t *TransverseMercator) unproject(x, y float64, c tmConstants, maxIter int) (lat, lon float64, err error) {
	x -= t.x0
	y -= t.y0

	if c.sphere {
		f := math.Exp(x / (c.a * t.k0))
		g := 0.5 * (f - 1/f)
		temp := t.lat0 + y/(c.a*t.k0)
		h := math.Cos(temp)
		lat = asinz(math.Sqrt((1 - h*h) / (1 + g*g)))
		if temp < 0 {
			lat = -lat
		}
		if g == 0 && h == 0 {
			lon = t.lon0
		} else {
			lon = adjustLon(math.Atan2(g, h) + t.lon0)
		}
		return lat, lon, nil
	}

	phi, err := footpointLatitude((c.ml0+y/t.k0)/c.a, c, maxIter)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(phi) >= halfPi {
		return halfPi * sign(y), t.lon0, nil
	}

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := math.Tan(phi)
	cc := c.ep2 * cosPhi * cosPhi
	cs := cc * cc
	tt := tanPhi * tanPhi
	ts := tt * tt
	con := 1 - c.es*sinPhi*sinPhi
	n := c.a / math.Sqrt(con)
	r := n * (1 - c.es) / con
	d := x / (n * t.k0)
	ds := d * d
	lat = phi - (n*tanPhi*ds/r)*(0.5-ds/24*(5+3*tt+10*cc-4*cs-9*c.ep2-ds/30*(61+90*tt+298*cc+45*ts-252*c.ep2-3*cs)))
	lon = adjustLon(t.lon0 + (d * (1 - ds/6*(1+2*tt+cc-ds/20*(5-2*cc+28*tt-3*cs+8*c.ep2+24*ts))) / cosPhi))
	return lat, lon, nil
}

// footpointLatitude solves the meridional distance series for the latitude
// whose arc length is con (in units of a).
func footpointLatitude(con float64, c tmConstants, maxIter int) (float64, error) {
	phi := con
	for i := 0; ; i++ {
		dphi := (con+c.e1*math.Sin(2*phi)-c.e2*math.Sin(4*phi)+c.e3*math.Sin(6*phi))/c.e0 - phi
		phi += dphi
		if math.Abs(dphi) <= epsln {
			return phi, nil
		}
		if i >= maxIter {
			logger.WithFields(logger.Fields{
				"arc": con, "iterations": i + 1,
			}).Debug("transverse mercator: footpoint latitude did not converge")
			return 0, errors.Wrapf(ErrConvergence, "latitude failed to converge after %d iterations", i+1)
		}
	}
}
