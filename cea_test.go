package geotrans_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geotrans"
)

func TestCylindricalEqualAreaForward(t *testing.T) {
	cea, err := geotrans.NewCylindricalEqualArea(geotrans.Params{"a": 6371007, "lat_ts": 30})
	require.NoError(t, err)
	pp, err := cea.Forward(geotrans.NewGeodeticPoint(45, 10, 250, geotrans.WGS84Datum))
	require.NoError(t, err)
	assert.InDelta(t, 962977.3705, pp.Parts()["x"], 1e-3)
	assert.InDelta(t, 5201905.4326, pp.Parts()["y"], 1e-3)
	assert.Equal(t, []string{"x", "y"}, pp.Names())

	// the radius comes from the point's datum when none is configured
	cea, err = geotrans.NewCylindricalEqualArea(geotrans.Params{"x0": 100, "y0": -100})
	require.NoError(t, err)
	pp, err = cea.Forward(geotrans.NewGeodeticPoint(-30, -20, 0, geotrans.WGS84Datum))
	require.NoError(t, err)
	assert.InDelta(t, 100-2226389.8159, pp.Parts()["x"], 1e-3)
	assert.InDelta(t, -100-3189068.5, pp.Parts()["y"], 1e-3)
}

func TestCylindricalEqualAreaRoundTrip(t *testing.T) {
	for _, params := range []geotrans.Params{
		{"a": 6371007, "lat_ts": 30},
		{"lon0": 150, "lat_ts": -45, "x0": 1000, "y0": 2000},
		{"ellps": bessel, "long0": -60},
	} {
		cea, err := geotrans.NewCylindricalEqualArea(params)
		require.NoError(t, err)
		for lat := -85.0; lat <= 85; lat += 5 {
			for lng := -175.0; lng <= 175; lng += 5 {
				p := geotrans.NewGeodeticPoint(lat, lng, 0, potsdam)
				pp, err := cea.Forward(p)
				require.NoError(t, err)
				p2, err := pp.Inverse()
				if err != nil {
					t.Fatalf("expected no error in round trip, got one at %v (%s)", p, err)
				}
				assert.InDelta(t, lat, p2.Lat(), 1e-9, "lat at %v", p)
				assert.InDelta(t, lng, p2.Lon(), 1e-9, "lon at %v", p)
				assert.Equal(t, 0.0, p2.Height())
				assert.Equal(t, potsdam, p2.Datum())
			}
		}
	}
}

func TestCylindricalEqualAreaBeyondPole(t *testing.T) {
	cea, err := geotrans.NewCylindricalEqualArea(geotrans.Params{"a": 6371007})
	require.NoError(t, err)
	pp, err := geotrans.NewProjectedPoint(cea, geotrans.Params{"x": 0, "y": 6371007 * 1.5}, geotrans.WGS84Datum)
	require.NoError(t, err)
	_, err = cea.Inverse(pp)
	assert.True(t, errors.Is(err, geotrans.ErrOutOfRange), "got %v", err)

	pp, err = geotrans.NewProjectedPoint(cea, geotrans.Params{"x": 0}, geotrans.WGS84Datum)
	require.NoError(t, err)
	_, err = cea.Inverse(pp)
	assert.True(t, errors.Is(err, geotrans.ErrConfiguration), "got %v", err)
}

func TestNewCylindricalEqualAreaErrors(t *testing.T) {
	cases := []struct {
		name   string
		params geotrans.Params
		want   error
	}{
		{"lat_ts at pole", geotrans.Params{"lat_ts": 90}, geotrans.ErrConfiguration},
		{"lat_ts beyond pole", geotrans.Params{"lat_ts": -95}, geotrans.ErrConfiguration},
		{"bad number", geotrans.Params{"x0": "east"}, geotrans.ErrConfiguration},
		{"duplicate alias", geotrans.Params{"lon0": 1, "long0": 2}, geotrans.ErrConfiguration},
		{"unknown", geotrans.Params{"k0": 1}, geotrans.ErrUnknownParameter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geotrans.NewCylindricalEqualArea(tc.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCylindricalEqualAreaParamsRoundTrip(t *testing.T) {
	cea, err := geotrans.NewCylindricalEqualArea(geotrans.Params{"a": 6378137, "rf": 298.257223563, "lat_ts": 30, "lon0": -3.5})
	require.NoError(t, err)
	params := cea.Params()
	assert.Equal(t, 30.0, params["lat_ts"])
	assert.Equal(t, -3.5, params["lon0"])
	assert.Contains(t, params, "es")

	cea2, err := geotrans.NewProjection("cea", params)
	require.NoError(t, err)
	assert.Equal(t, params, cea2.Params())
	assert.Equal(t, geotrans.KindCEA, cea2.Kind())
}
