package geotrans_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geotrans"
)

func TestEllipsoidDerivedValues(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
	}{
		{"airy", 6377563.396, 6356256.910},
		{"bessel", 6377397.155, 6356078.962818},
		{"wgs84", 6378137, 6356752.314245},
		{"sphere", 6370997, 6370997},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := geotrans.NewEllipsoidAB(tc.a, tc.b)
			f := (tc.a - tc.b) / tc.a
			assert.InEpsilon(t, tc.a, e.A(), 1e-15)
			assert.InEpsilon(t, tc.b, e.B(), 1e-15)
			assert.InDelta(t, f, e.F(), 1e-15)
			if f != 0 {
				assert.InEpsilon(t, 1/f, e.RF(), 1e-9)
			} else {
				assert.True(t, math.IsInf(e.RF(), 1))
			}
			assert.InDelta(t, (tc.a*tc.a-tc.b*tc.b)/(tc.a*tc.a), e.ES(), 1e-15)
			assert.InDelta(t, math.Sqrt(e.ES()), e.E(), 1e-15)
			assert.InDelta(t, e.ES()/(1-e.ES()), e.EP2(), 1e-15)

			// the same shape defined by f or rf gives the same b
			assert.InDelta(t, tc.b, e.WithF(f).B(), 1e-6)
			if f != 0 {
				assert.InDelta(t, tc.b, e.WithRF(1/f).B(), 1e-6)
			}
		})
	}
}

func TestEllipsoidIsSphere(t *testing.T) {
	assert.True(t, geotrans.NewSphere(6370997).IsSphere())
	assert.True(t, geotrans.NewEllipsoidAB(6370997, 6370997).IsSphere())
	assert.False(t, geotrans.WGS84Ellipsoid.IsSphere())
	assert.False(t, geotrans.NewEllipsoidARF(6378137, 298.257223563).IsSphere())
}

func TestWGS84Ellipsoid(t *testing.T) {
	e := geotrans.WGS84Ellipsoid
	assert.Equal(t, 6378137.0, e.A())
	assert.InDelta(t, 6356752.314245, e.B(), 1e-6)
	assert.InDelta(t, 0.00669437999014, e.ES(), 1e-14)
	assert.Equal(t, "WGS84", e.Code())

	empty, err := geotrans.NewEllipsoid(nil)
	require.NoError(t, err)
	assert.Equal(t, e, empty)
}

func TestNewEllipsoid(t *testing.T) {
	e, err := geotrans.NewEllipsoid(geotrans.Params{"A": "6377397.155", "rf": 299.1528128, "code": "bessel", "Name": "Bessel 1841"})
	require.NoError(t, err)
	assert.Equal(t, 6377397.155, e.A())
	assert.Equal(t, 299.1528128, e.RF())
	assert.InDelta(t, 6356078.962818, e.B(), 1e-6)
	assert.Equal(t, "bessel", e.Code())
	assert.Equal(t, "Bessel 1841", e.Name())

	e, err = geotrans.NewEllipsoid(geotrans.Params{"a": 6370997})
	require.NoError(t, err)
	assert.True(t, e.IsSphere())

	e, err = geotrans.NewEllipsoid(geotrans.Params{"a": 6378137, "f": 1 / 298.257222101})
	require.NoError(t, err)
	assert.InDelta(t, 298.257222101, e.RF(), 1e-9)
}

func TestNewEllipsoidErrors(t *testing.T) {
	cases := []struct {
		name   string
		params geotrans.Params
		want   error
	}{
		{"missing a", geotrans.Params{"b": 6356752.314245}, geotrans.ErrConfiguration},
		{"two shapes", geotrans.Params{"a": 6378137, "b": 6356752.3, "rf": 298.257223563}, geotrans.ErrConfiguration},
		{"bad number", geotrans.Params{"a": "six"}, geotrans.ErrConfiguration},
		{"unknown", geotrans.Params{"a": 6378137, "es": 0.0066943}, geotrans.ErrUnknownParameter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geotrans.NewEllipsoid(tc.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestEllipsoidWithReplacesShape(t *testing.T) {
	e := geotrans.NewEllipsoidAB(6378137, 6356752.314245)
	rf := e.WithRF(300)
	assert.Equal(t, 300.0, rf.RF())
	assert.InDelta(t, 6378137*(1-1.0/300), rf.B(), 1e-6)
	assert.Equal(t, 6356752.314245, e.B(), "receiver unchanged")

	a := rf.WithA(6377000)
	assert.Equal(t, 300.0, a.RF())
	assert.InDelta(t, 6377000*(1-1.0/300), a.B(), 1e-6)
}

func TestEllipsoidParamsRoundTrip(t *testing.T) {
	for _, e := range []geotrans.Ellipsoid{
		geotrans.WGS84Ellipsoid,
		geotrans.NewEllipsoidAB(6377563.396, 6356256.910).WithCode("airy"),
		geotrans.NewSphere(6370997),
		geotrans.WGS84Ellipsoid.WithF(1 / 298.257222101).WithName("GRS 1980"),
	} {
		got, err := geotrans.NewEllipsoid(e.Params())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
}
