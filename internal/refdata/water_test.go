package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWaterCost(t *testing.T) {
	tests := []struct {
		capacity string
		want     float64
	}{
		// 2500 × 365 / 1000 × 1.04 = 949.0; pipe 91 × 12 = 1092
		{capacity: "5MW", want: 2041},
		// 10000 × 365 / 1000 × 1.04 = 3796.0; pipe 196 × 12 = 2352
		{capacity: "20MW", want: 6148},
		// 50000 × 365 / 1000 × 1.04 = 18980.0; pipe 1355 × 12 = 16260
		{capacity: "100MW", want: 35240},
	}

	for _, tt := range tests {
		t.Run(tt.capacity, func(t *testing.T) {
			got, err := GenerateWaterCost(tt.capacity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestGenerateWaterCost_UnsupportedCapacity verifies the error names
// the capacity and enumerates the supported set.
func TestGenerateWaterCost_UnsupportedCapacity(t *testing.T) {
	_, err := GenerateWaterCost("50MW")

	var capErr *UnsupportedCapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "50MW", capErr.Capacity)
	assert.Equal(t, SupportedCapacities, capErr.Supported)

	assert.Contains(t, err.Error(), "50MW")
	for _, capacity := range SupportedCapacities {
		assert.Contains(t, err.Error(), capacity)
	}
}
