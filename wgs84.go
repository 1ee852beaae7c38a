package geotrans

import "fmt"

const (
	wgs84SemiMajorAxis        = 6378137.0
	wgs84ReciprocalFlattening = 298.257223563
)

// WGS84Ellipsoid is the WGS84 reference ellipsoid.
var WGS84Ellipsoid = NewEllipsoidARF(wgs84SemiMajorAxis, wgs84ReciprocalFlattening).
	WithCode("WGS84").
	WithName("WGS 84")

// WGS84Datum is the reference datum: no transform, WGS84 ellipsoid.
var WGS84Datum = Datum{typ: Datum3Term, ellipsoid: WGS84Ellipsoid, code: "WGS84", name: "WGS84"}

// DefaultLatLon is the identity projection.
var DefaultLatLon *LatLon

// DefaultUTM is a WGS84 ellipsoid based UTM projection that selects the zone
// and hemisphere from each point.
var DefaultUTM *UTM

func init() {
	var err error
	DefaultLatLon, err = NewLatLon(nil)
	if err != nil {
		panic(fmt.Sprintf("error constructing lat/lon projection: %s", err))
	}
	DefaultUTM, err = NewUTM(Params{"ellps": WGS84Ellipsoid})
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 UTM projection: %s", err))
	}
}
