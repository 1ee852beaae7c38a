package geotrans_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/geotrans"
)

var amersfoortTM = geotrans.Params{
	"ellps": bessel,
	"lat0":  52.156,
	"lon0":  5.388,
	"k0":    0.9999079,
	"x0":    155000,
	"y0":    463000,
}

func TestTransverseMercatorRoundTrip(t *testing.T) {
	tm, err := geotrans.NewTransverseMercator(amersfoortTM)
	require.NoError(t, err)
	for lat := 40.0; lat <= 65; lat += 0.5 {
		for lng := 5.388 - 4; lng <= 5.388+4; lng += 0.25 {
			p := geotrans.NewGeodeticPoint(lat, lng, 0, potsdam)
			pp, err := tm.Forward(p)
			require.NoError(t, err)
			p2, err := tm.Inverse(pp)
			if err != nil {
				t.Fatalf("expected no error in round trip, got one at %v (%s)", p, err)
			}
			if math.Abs(p2.Lat()-lat) > 1e-7 || math.Abs(p2.Lon()-lng) > 1e-7 {
				t.Fatalf("expected (%g, %g), got (%g, %g)", lat, lng, p2.Lat(), p2.Lon())
			}
			assert.Equal(t, potsdam, p2.Datum())
		}
	}
}

func TestTransverseMercatorOrigin(t *testing.T) {
	tm, err := geotrans.NewTransverseMercator(amersfoortTM)
	require.NoError(t, err)
	pp, err := tm.Forward(geotrans.NewGeodeticPoint(52.156, 5.388, 0, potsdam))
	require.NoError(t, err)
	x, err := pp.Get("easting")
	require.NoError(t, err)
	y, err := pp.Get("N")
	require.NoError(t, err)
	assert.InDelta(t, 155000, x, 1e-6)
	assert.InDelta(t, 463000, y, 1e-6)

	// north of the origin along the central meridian, eastings are x0
	pp, err = tm.Forward(geotrans.NewGeodeticPoint(53.156, 5.388, 0, potsdam))
	require.NoError(t, err)
	assert.InDelta(t, 155000, pp.Parts()["x"], 1e-6)
	assert.InDelta(t, 463000+111250, pp.Parts()["y"], 500)
}

func TestTransverseMercatorEllipsoidFromPoint(t *testing.T) {
	fixed, err := geotrans.NewTransverseMercator(amersfoortTM)
	require.NoError(t, err)
	params := geotrans.Params{}
	for k, v := range amersfoortTM {
		if k != "ellps" {
			params[k] = v
		}
	}
	free, err := geotrans.NewTransverseMercator(params)
	require.NoError(t, err)
	assert.NotContains(t, free.Params(), "a")

	p := geotrans.NewGeodeticPoint(51.5, 4.1, 0, potsdam)
	want, err := fixed.Forward(p)
	require.NoError(t, err)
	got, err := free.Forward(p)
	require.NoError(t, err)
	assert.Equal(t, want.Parts(), got.Parts())

	// the same coordinates on WGS84 project differently
	other, err := free.Forward(p.WithDatum(geotrans.WGS84Datum))
	require.NoError(t, err)
	assert.NotEqual(t, want.Parts(), other.Parts())
}

func TestTransverseMercatorSphere(t *testing.T) {
	tm, err := geotrans.NewTransverseMercator(geotrans.Params{"a": 6370997, "lon0": -90, "lat0": 10, "k": 0.9996, "x0": 500000, "y0": 200000})
	require.NoError(t, err)
	for lat := -80.0; lat <= 80; lat += 10 {
		for lng := -150.0; lng <= -30; lng += 10 {
			p := geotrans.NewGeodeticPoint(lat, lng, 0, geotrans.WGS84Datum)
			pp, err := tm.Forward(p)
			require.NoError(t, err)
			p2, err := tm.Inverse(pp)
			require.NoError(t, err)
			assert.InDelta(t, lat, p2.Lat(), 1e-9, "lat at %v", p)
			assert.InDelta(t, lng, p2.Lon(), 1e-9, "lon at %v", p)
		}
	}

	pp, err := tm.Forward(geotrans.NewGeodeticPoint(10, -90, 0, geotrans.WGS84Datum))
	require.NoError(t, err)
	assert.InDelta(t, 500000, pp.Parts()["x"], 1e-6)
	assert.InDelta(t, 200000, pp.Parts()["y"], 1e-6)

	_, err = tm.Forward(geotrans.NewGeodeticPoint(0, 0, 0, geotrans.WGS84Datum))
	assert.True(t, errors.Is(err, geotrans.ErrProjectionSingularity), "got %v", err)
	_, err = tm.Forward(geotrans.NewGeodeticPoint(0, 180, 0, geotrans.WGS84Datum))
	assert.True(t, errors.Is(err, geotrans.ErrProjectionSingularity), "got %v", err)
}

func TestTransverseMercatorPole(t *testing.T) {
	tm, err := geotrans.NewTransverseMercator(amersfoortTM)
	require.NoError(t, err)
	pp, err := geotrans.NewProjectedPoint(tm, geotrans.Params{"x": 155000, "y": 463000 + 10100000}, potsdam)
	require.NoError(t, err)
	p, err := pp.Inverse()
	require.NoError(t, err)
	assert.Equal(t, 90.0, p.Lat())
	assert.InDelta(t, 5.388, p.Lon(), 1e-12)

	pp, err = geotrans.NewProjectedPoint(tm, geotrans.Params{"x": 155000, "y": 463000 - 16100000}, potsdam)
	require.NoError(t, err)
	p, err = pp.Inverse()
	require.NoError(t, err)
	assert.Equal(t, -90.0, p.Lat())
	assert.InDelta(t, 5.388, p.Lon(), 1e-12)
}

func TestTransverseMercatorIterationCap(t *testing.T) {
	es := bessel.ES()
	phi, err := geotrans.FootpointLatitude(0.9, es, 6)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, phi, 0.01)

	_, err = geotrans.FootpointLatitude(0.9, es, 0)
	assert.True(t, errors.Is(err, geotrans.ErrConvergence), "got %v", err)

	_, err = geotrans.FootpointLatitude(math.NaN(), es, 6)
	assert.True(t, errors.Is(err, geotrans.ErrConvergence), "got %v", err)

	tm, err := geotrans.NewTransverseMercator(amersfoortTM)
	require.NoError(t, err)
	pp, err := geotrans.NewProjectedPoint(tm, geotrans.Params{"x": 155000, "y": math.Inf(1)}, potsdam)
	require.NoError(t, err)
	_, err = tm.Inverse(pp)
	assert.True(t, errors.Is(err, geotrans.ErrConvergence), "got %v", err)
}

func TestNewTransverseMercatorErrors(t *testing.T) {
	cases := []struct {
		name   string
		params geotrans.Params
		want   error
	}{
		{"es without a", geotrans.Params{"es": 0.006}, geotrans.ErrConfiguration},
		{"ellps with a", geotrans.Params{"ellps": bessel, "a": 6377397.155}, geotrans.ErrConfiguration},
		{"es with rf", geotrans.Params{"a": 6377397.155, "es": 0.006, "rf": 299}, geotrans.ErrConfiguration},
		{"zero scale", geotrans.Params{"k0": 0}, geotrans.ErrConfiguration},
		{"lat0 range", geotrans.Params{"lat0": 91}, geotrans.ErrConfiguration},
		{"unknown", geotrans.Params{"lat_ts": 10}, geotrans.ErrUnknownParameter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := geotrans.NewTransverseMercator(tc.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestTransverseMercatorParamsRoundTrip(t *testing.T) {
	for _, params := range []geotrans.Params{
		amersfoortTM,
		{"a": 6378137, "es": 0.00669438, "ep2": 0.0067395, "lon0": 9},
		{"a": 6378388, "rf": 297, "lat0": -10, "lon0": 30, "x0": 1e6},
		{},
	} {
		tm, err := geotrans.NewTransverseMercator(params)
		require.NoError(t, err)
		tm2, err := geotrans.NewTransverseMercator(tm.Params())
		require.NoError(t, err)
		assert.Equal(t, tm.Params(), tm2.Params())

		p := geotrans.NewGeodeticPoint(-5, 12, 0, geotrans.WGS84Datum)
		a, err := tm.Forward(p)
		require.NoError(t, err)
		b, err := tm2.Forward(p)
		require.NoError(t, err)
		assert.Equal(t, a.Parts(), b.Parts())
	}
}
