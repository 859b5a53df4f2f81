package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
		errType error
	}{
		{
			name: "valid point",
			lat:  33.5731, lng: -7.5898,
			wantErr: false,
		},
		{
			name: "valid point at min bounds",
			lat:  kernel.LatitudeMin, lng: kernel.LongitudeMin,
			wantErr: false,
		},
		{
			name: "valid point at max bounds",
			lat:  kernel.LatitudeMax, lng: kernel.LongitudeMax,
			wantErr: false,
		},
		{
			name: "latitude too small",
			lat:  -90.5, lng: 0,
			wantErr: true,
			errType: errs.NewValueIsOutOfRangeError("lat", -90.5, kernel.LatitudeMin, kernel.LatitudeMax),
		},
		{
			name: "latitude too large",
			lat:  91, lng: 0,
			wantErr: true,
			errType: errs.NewValueIsOutOfRangeError("lat", 91.0, kernel.LatitudeMin, kernel.LatitudeMax),
		},
		{
			name: "longitude too small",
			lat:  0, lng: -180.01,
			wantErr: true,
			errType: errs.NewValueIsOutOfRangeError("lng", -180.01, kernel.LongitudeMin, kernel.LongitudeMax),
		},
		{
			name: "longitude too large",
			lat:  0, lng: 181,
			wantErr: true,
			errType: errs.NewValueIsOutOfRangeError("lng", 181.0, kernel.LongitudeMin, kernel.LongitudeMax),
		},
		{
			name: "both coordinates invalid",
			lat:  100, lng: 200,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lng)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, p)
				if tt.errType != nil {
					assert.ErrorAs(t, err, &tt.errType)
				}
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.lat, p.Lat(), 1e-9)
				assert.InDelta(t, tt.lng, p.Lng(), 1e-9)
				assert.NoError(t, p.Validate())
			}
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint
		require.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("constructed point is valid", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(31.6295, -7.9811)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 33.5731, lng1: -7.5898,
			lat2: 33.5731, lng2: -7.5898,
			wantKm:    0,
			tolerance: 0.0001,
		},
		{
			name: "across Casablanca (~4km)",
			lat1: 33.5731, lng1: -7.5898,
			lat2: 33.5950, lng2: -7.6187,
			wantKm:    3.6,
			tolerance: 1.0,
		},
		{
			name: "Casablanca to Marrakesh (~217km)",
			lat1: 33.5731, lng1: -7.5898,
			lat2: 31.6295, lng2: -7.9811,
			wantKm:    217,
			tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := kernel.NewGeoPoint(tt.lat1, tt.lng1)
			require.NoError(t, err)
			b, err := kernel.NewGeoPoint(tt.lat2, tt.lng2)
			require.NoError(t, err)

			got, err := a.DistanceKm(b)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestGeoPoint_DistanceKm_Symmetry(t *testing.T) {
	a, err := kernel.NewGeoPoint(33.5731, -7.5898)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(34.0209, -6.8416)
	require.NoError(t, err)

	d1, err := a.DistanceKm(b)
	require.NoError(t, err)
	d2, err := b.DistanceKm(a)
	require.NoError(t, err)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestGeoPoint_DistanceKm_InvalidPoint(t *testing.T) {
	a, err := kernel.NewGeoPoint(33.5731, -7.5898)
	require.NoError(t, err)

	var zero kernel.GeoPoint
	_, err = a.DistanceKm(zero)
	require.Error(t, err)

	_, err = zero.DistanceKm(a)
	require.Error(t, err)
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(33.5731, -7.5898)
	b, _ := kernel.NewGeoPoint(33.5731, -7.5898)
	c, _ := kernel.NewGeoPoint(34.0209, -6.8416)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestRound3(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "already rounded", in: 12.4, want: 12.4},
		{name: "rounds up", in: 2.3996, want: 2.4},
		{name: "truncates noise", in: 6.50000001, want: 6.5},
		{name: "negative", in: -0.0004, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.Round3(tt.in)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Round3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
