package geotrans

// GeocentricToGeodetic exposes the Hannover solver with an explicit
// iteration limit.
var GeocentricToGeodetic = geocentricToGeodetic

// FootpointLatitude exposes the Transverse Mercator footpoint solver for an
// ellipsoid of eccentricity squared es, with an explicit iteration limit.
func FootpointLatitude(arc, es float64, maxIter int) (float64, error) {
	t := &TransverseMercator{k0: 1}
	return footpointLatitude(arc, t.derive(1, es), maxIter)
}
