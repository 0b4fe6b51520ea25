package paging

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumai/space-api/pkg/apperror"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", page: 0, size: 0, wantLimit: 100, wantOffset: 0},
		{name: "second page", page: 2, size: 25, wantLimit: 25, wantOffset: 25},
		{name: "cap is inclusive", page: 1, size: 100, wantLimit: 100, wantOffset: 0},
		{name: "above cap", page: 1, size: 101, wantErr: true},
		{name: "negative page", page: -1, size: 10, wantErr: true},
		{name: "negative size", page: 1, size: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Normalize(tt.page, tt.size, DefaultMaxPageSize)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, p.Limit())
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestNormalize_ZeroMaxFallsBackToDefault(t *testing.T) {
	p, err := Normalize(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxPageSize, p.Size)
}

func TestNormalize_OffsetOverflowRejected(t *testing.T) {
	_, err := Normalize(math.MaxInt/50, 100, DefaultMaxPageSize)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	last := math.MaxInt/100 + 1
	p, err := Normalize(last, 100, DefaultMaxPageSize)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Offset(), 0)

	_, err = Normalize(last+1, 100, DefaultMaxPageSize)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}
