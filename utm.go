package geotrans

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return "invalid"
}

// UTM is the Universal Transverse Mercator projection: a Transverse
// Mercator projection per six degree zone with scale 0.9996 on the central
// meridian, a false easting of 500km and, in the southern hemisphere, a false
// northing of 10000km.
//
// A UTM projection is either fixed to one zone and hemisphere, or chooses
// both from each point it projects. Projected points carry the zone and
// hemisphere used in their zone and south parts.
type UTM struct {
	zone                  int        // 0: chosen per point
	hemisphere            Hemisphere // HemisphereInvalid: chosen per point
	fig                   figure
	transverseMercatorMap [61]*TransverseMercator
}

const (
	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0 // southern hemisphere
	utmMinLat        = -80.5
	utmMaxLat        = 84.5
)

var utmParams = mergeAliases(figureParams, aliasTable{
	"zone":  "zone",
	"south": "south",
})

var utmParts = aliasTable{
	"x": "x", "e": "x", "easting": "x",
	"y": "y", "n": "y", "northing": "y",
	"zone":  "zone",
	"south": "south",
}

// NewUTM constructs a UTM projection from the keys zone (1 to 60, negative
// for the southern hemisphere) and south, and the ellipsoid keys a, es, b, f,
// rf and ellps. Without a zone, the zone is chosen from each point's
// longitude and, unless south is given, the hemisphere from its latitude.
func NewUTM(p Params) (*UTM, error) {
	const owner = "utm"
	vals, err := utmParams.resolve(p, owner)
	if err != nil {
		return nil, err
	}
	u := &UTM{}
	if u.fig, err = resolveFigure(owner, vals); err != nil {
		return nil, err
	}

	if v, ok := vals["zone"]; ok {
		z, err := toFloat(owner, "zone", v)
		if err != nil {
			return nil, err
		}
		if z != math.Trunc(z) || z == 0 || math.Abs(z) > 60 {
			return nil, errors.Wrapf(ErrConfiguration, "%s: zone %g out of range", owner, z)
		}
		u.zone = int(math.Abs(z))
		u.hemisphere = HemisphereNorth
		if z < 0 {
			u.hemisphere = HemisphereSouth
		}
	}
	if v, ok := vals["south"]; ok {
		south, err := toBool(owner, "south", v)
		if err != nil {
			return nil, err
		}
		if south {
			u.hemisphere = HemisphereSouth
		} else if u.hemisphere == HemisphereSouth {
			return nil, errors.Wrapf(ErrConfiguration, "%s: negative zone contradicts south=false", owner)
		} else {
			u.hemisphere = HemisphereNorth
		}
	}

	tp := Params{"lat0": 0.0, "x0": utmFalseEasting, "y0": 0.0, "k0": utmScale}
	u.fig.params(tp)
	for zone := 1; zone <= 60; zone++ {
		tp["lon0"] = float64(6*zone - 183)
		if u.transverseMercatorMap[zone], err = NewTransverseMercator(tp); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Kind returns KindUTM.
func (u *UTM) Kind() Kind { return KindUTM }

// Name returns the long name of the projection.
func (u *UTM) Name() string { return "Universal Transverse Mercator" }

// CoordinateNames returns x, y, zone and south.
func (u *UTM) CoordinateNames() []string { return []string{"x", "y", "zone", "south"} }

func (u *UTM) parts() aliasTable { return utmParts }

// Zone returns the configured zone, or 0 when it is chosen per point.
func (u *UTM) Zone() int { return u.zone }

// Hemisphere returns the configured hemisphere, or HemisphereInvalid when it
// is chosen per point.
func (u *UTM) Hemisphere() Hemisphere { return u.hemisphere }

// Params returns the projection parameters.
func (u *UTM) Params() Params {
	p := Params{}
	if u.zone != 0 {
		p["zone"] = u.zone
	}
	if u.hemisphere != HemisphereInvalid {
		p["south"] = u.hemisphere == HemisphereSouth
	}
	u.fig.params(p)
	return p
}

// Forward projects p into its zone.
func (u *UTM) Forward(p GeodeticPoint) (ProjectedPoint, error) {
	zone := u.zone
	if zone == 0 {
		if p.lat < utmMinLat || p.lat >= utmMaxLat {
			return ProjectedPoint{}, errors.Wrapf(ErrOutOfRange, "%s: latitude %g° outside %g..%g", u.Name(), p.lat, utmMinLat, utmMaxLat)
		}
		var err error
		if zone, err = zoneFor(p.lat, p.lon); err != nil {
			return ProjectedPoint{}, err
		}
	}
	hemisphere := u.hemisphere
	if hemisphere == HemisphereInvalid {
		hemisphere = HemisphereNorth
		if p.lat < 0 {
			hemisphere = HemisphereSouth
		}
	}

	tm := u.transverseMercatorMap[zone]
	x, y, err := tm.project(deg2rad(p.lat), deg2rad(p.lon), tm.constants(p.datum))
	if err != nil {
		return ProjectedPoint{}, errors.Wrapf(err, "%s forward (%g, %g) zone %d", u.Name(), p.lat, p.lon, zone)
	}
	south := 0.0
	if hemisphere == HemisphereSouth {
		y += utmFalseNorthing
		south = 1
	}
	return ProjectedPoint{
		coords: map[string]float64{"x": x, "y": y, "zone": float64(zone), "south": south},
		proj:   u,
		datum:  orWGS84(p.datum),
	}, nil
}

// Inverse converts p back to latitude and longitude. The zone and hemisphere
// are taken from the point's parts when set, else from the projection.
func (u *UTM) Inverse(p ProjectedPoint) (GeodeticPoint, error) {
	x, y, err := p.xy()
	if err != nil {
		return GeodeticPoint{}, err
	}

	zone, hemisphere := u.zone, u.hemisphere
	if z, ok := p.coords["zone"]; ok {
		if z != math.Trunc(z) || z == 0 || math.Abs(z) > 60 {
			return GeodeticPoint{}, errors.Wrapf(ErrOutOfRange, "%s: zone %g out of range", u.Name(), z)
		}
		zone = int(math.Abs(z))
		if z < 0 {
			hemisphere = HemisphereSouth
		}
	}
	if zone == 0 {
		return GeodeticPoint{}, errors.Wrapf(ErrConfiguration, "%s: point has no zone", u.Name())
	}
	if s, ok := p.coords["south"]; ok {
		hemisphere = HemisphereNorth
		if s != 0 {
			hemisphere = HemisphereSouth
		}
	}
	if hemisphere == HemisphereSouth {
		y -= utmFalseNorthing
	}

	tm := u.transverseMercatorMap[zone]
	lat, lon, err := tm.unproject(x, y, tm.constants(p.datum), tmMaxIter)
	if err != nil {
		return GeodeticPoint{}, errors.Wrapf(err, "%s inverse (%g, %g) zone %d", u.Name(), x, y, zone)
	}
	return NewGeodeticPoint(rad2deg(lat), rad2deg(lon), 0, p.datum), nil
}

// zoneFor returns the zone for lat, lon in degrees, including the
// exceptions over southern Norway and Svalbard.
func zoneFor(lat, lon float64) (int, error) {
	longitude := normalizeLon(deg2rad(lon))
	if math.IsNaN(longitude) || math.IsNaN(lat) {
		return 0, errors.Wrapf(ErrOutOfRange, "utm: no zone for (%g, %g)", lat, lon)
	}
	if longitude < 0 {
		longitude += 2 * math.Pi
	}

	latDegrees := int(lat)
	longDegrees := int(rad2deg(longitude))

	var zone int
	if longitude < math.Pi {
		zone = int(31 + (rad2deg(longitude+1.0e-10) / 6.0))
	} else {
		zone = int(rad2deg(longitude+1.0e-10)/6.0 - 29)
	}
	if zone > 60 {
		zone = 1
	}

	// check for special zone cases over southern Norway and Svalbard
	if (latDegrees > 55) && (latDegrees < 64) && (longDegrees > -1) &&
		(longDegrees < 3) {
		zone = 31
	}
	if (latDegrees > 55) && (latDegrees < 64) && (longDegrees > 2) &&
		(longDegrees < 12) {
		zone = 32
	}
	if (latDegrees > 71) && (longDegrees > -1) && (longDegrees < 9) {
		zone = 31
	}
	if (latDegrees > 71) && (longDegrees > 8) && (longDegrees < 21) {
		zone = 33
	}
	if (latDegrees > 71) && (longDegrees > 20) && (longDegrees < 33) {
		zone = 35
	}
	if (latDegrees > 71) && (longDegrees > 32) && (longDegrees < 42) {
		zone = 37
	}
	return zone, nil
}

type latitudeBand struct {
	letter       byte
	north, south float64 // degrees
}

var latitudeBands = [20]latitudeBand{
	{'C', -72.0, -80.5},
	{'D', -64.0, -72.0},
	{'E', -56.0, -64.0},
	{'F', -48.0, -56.0},
	{'G', -40.0, -48.0},
	{'H', -32.0, -40.0},
	{'J', -24.0, -32.0},
	{'K', -16.0, -24.0},
	{'L', -8.0, -16.0},
	{'M', 0.0, -8.0},
	{'N', 8.0, 0.0},
	{'P', 16.0, 8.0},
	{'Q', 24.0, 16.0},
	{'R', 32.0, 24.0},
	{'S', 40.0, 32.0},
	{'T', 48.0, 40.0},
	{'U', 56.0, 48.0},
	{'V', 64.0, 56.0},
	{'W', 72.0, 64.0},
	{'X', 84.5, 72.0}}

// LatitudeBand returns the UTM latitude band letter, C to X, for a latitude
// in degrees.
func LatitudeBand(lat float64) (byte, error) {
	for _, b := range latitudeBands {
		if lat >= b.south && lat < b.north {
			return b.letter, nil
		}
	}
	return 0, errors.Wrapf(ErrOutOfRange, "utm: latitude %g° has no band", lat)
}
