package model

import (
	"math"
	"testing"
)

func TestMatrixFactorization_Predict(t *testing.T) {
	m := &MatrixFactorization{
		GlobalMean: 3.0,
		UserFactors: map[int64][]float64{
			7: {0.5, 1.0},
		},
		ItemFactors: map[int64][]float64{
			1: {2.0, 0.5},
		},
		UserBias: map[int64]float64{7: 0.25},
		ItemBias: map[int64]float64{1: -0.5, 2: 0.1},
	}

	tests := []struct {
		name   string
		userID int64
		itemID int64
		want   float64
	}{
		{
			name:   "full prediction with factors",
			userID: 7,
			itemID: 1,
			// 3.0 + 0.25 - 0.5 + (0.5*2.0 + 1.0*0.5) = 4.25
			want: 4.25,
		},
		{
			name:   "unknown item falls back to biases",
			userID: 7,
			itemID: 99,
			want:   3.25,
		},
		{
			name:   "unknown user falls back to biases",
			userID: 99,
			itemID: 2,
			want:   3.1,
		},
		{
			name:   "unknown user and item yields global mean",
			userID: 99,
			itemID: 98,
			want:   3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Predict(tt.userID, tt.itemID)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict(%d, %d) = %v, want %v", tt.userID, tt.itemID, got, tt.want)
			}
		})
	}
}
