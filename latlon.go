package geotrans

// LatLon is the identity projection: the projected coordinates are the
// latitude and longitude in degrees and the height.
type LatLon struct{}

var latlonParts = aliasTable{
	"lat": "lat", "latitude": "lat", "phi": "lat",
	"lon": "lon", "long": "lon", "longitude": "lon", "lam": "lon",
	"height": "height", "h": "height", "z": "height",
}

// NewLatLon returns the identity projection. It takes no parameters.
func NewLatLon(p Params) (*LatLon, error) {
	if _, err := (aliasTable{}).resolve(p, "latlon"); err != nil {
		return nil, err
	}
	return &LatLon{}, nil
}

// Kind returns KindLatLon.
func (l *LatLon) Kind() Kind { return KindLatLon }

// Name returns the long name of the projection.
func (l *LatLon) Name() string { return "Lat/Lon" }

// CoordinateNames returns lat, lon and height.
func (l *LatLon) CoordinateNames() []string { return []string{"lat", "lon", "height"} }

// Params returns an empty mapping.
func (l *LatLon) Params() Params { return Params{} }

func (l *LatLon) parts() aliasTable { return latlonParts }

// Forward returns the point's own coordinates.
func (l *LatLon) Forward(p GeodeticPoint) (ProjectedPoint, error) {
	return ProjectedPoint{
		coords: map[string]float64{"lat": p.lat, "lon": p.lon, "height": p.height},
		proj:   l,
		datum:  orWGS84(p.datum),
	}, nil
}

// Inverse returns the geodetic point with the projected coordinates. A
// missing height is zero.
func (l *LatLon) Inverse(p ProjectedPoint) (GeodeticPoint, error) {
	lat, err := p.Get("lat")
	if err != nil {
		return GeodeticPoint{}, err
	}
	lon, err := p.Get("lon")
	if err != nil {
		return GeodeticPoint{}, err
	}
	return NewGeodeticPoint(lat, lon, p.coords["height"], p.datum), nil
}
