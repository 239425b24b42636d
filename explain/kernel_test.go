package explain

import (
	"math"
	"testing"
)

func TestKernelExplainer_Explain(t *testing.T) {
	// f(x) = 2*x0 + 3*x1, a linear function so marginal contributions
	// against a zero background are exact.
	linear := func(v []float64) float64 {
		return 2*v[0] + 3*v[1]
	}

	tests := []struct {
		name     string
		predict  PredictFunc
		basis    [][]float64
		features []float64
		want     []float64
	}{
		{
			name:     "linear model against zero background",
			predict:  linear,
			basis:    [][]float64{{0, 0}},
			features: []float64{1, 2},
			// phi_0 = f(1,2) - f(0,2) = 8 - 6 = 2
			// phi_1 = f(1,2) - f(1,0) = 8 - 2 = 6
			want: []float64{2, 6},
		},
		{
			name:     "mean over multiple background rows",
			predict:  linear,
			basis:    [][]float64{{0, 0}, {2, 0}},
			features: []float64{1, 2},
			// phi_0 = 8 - mean(f(0,2), f(2,2)) = 8 - mean(6, 10) = 0
			want: []float64{0, 6},
		},
		{
			name:     "empty basis yields zero vector",
			predict:  linear,
			basis:    nil,
			features: []float64{1, 2},
			want:     []float64{0, 0},
		},
		{
			name:     "empty features yields nil",
			predict:  linear,
			basis:    [][]float64{{0, 0}},
			features: nil,
			want:     nil,
		},
		{
			name: "panicking predict yields nil",
			predict: func(v []float64) float64 {
				panic("model blew up")
			},
			basis:    [][]float64{{0, 0}},
			features: []float64{1, 2},
			want:     nil,
		},
		{
			name:     "nil predict yields nil",
			predict:  nil,
			basis:    [][]float64{{0, 0}},
			features: []float64{1, 2},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewKernelExplainer("test", tt.predict, tt.basis)
			got := e.Explain(tt.features)
			if len(got) != len(tt.want) {
				t.Fatalf("Explain() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Explain()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKernelExplainer_ShortBasisRow(t *testing.T) {
	// Background rows shorter than the feature vector only perturb the
	// features they cover; the rest keep a zero contribution.
	e := NewKernelExplainer("test", func(v []float64) float64 {
		return v[0] + v[1]
	}, [][]float64{{0}})

	got := e.Explain([]float64{3, 5})
	if len(got) != 2 {
		t.Fatalf("Explain() = %v, want 2 contributions", got)
	}
	if got[0] != 3 {
		t.Errorf("Explain()[0] = %v, want 3", got[0])
	}
	if got[1] != 0 {
		t.Errorf("Explain()[1] = %v, want 0", got[1])
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name          string
		contributions []float64
		wantValue     float64
		wantBreakdown map[string]float64
	}{
		{
			name:          "first contribution becomes the value",
			contributions: []float64{1.5, -0.25},
			wantValue:     1.5,
			wantBreakdown: map[string]float64{"feature_0": 1.5, "feature_1": -0.25},
		},
		{
			name:          "nil contributions flatten to zero",
			contributions: nil,
			wantValue:     0,
			wantBreakdown: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, breakdown := Flatten(tt.contributions)
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
			if len(breakdown) != len(tt.wantBreakdown) {
				t.Fatalf("breakdown = %v, want %v", breakdown, tt.wantBreakdown)
			}
			for k, want := range tt.wantBreakdown {
				if breakdown[k] != want {
					t.Errorf("breakdown[%q] = %v, want %v", k, breakdown[k], want)
				}
			}
		})
	}
}
