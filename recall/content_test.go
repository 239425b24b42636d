package recall

import (
	"context"
	"testing"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
)

func TestContentRecall(t *testing.T) {
	sparse := &model.SparseUserScores{
		Scores: map[int64]map[int64]float64{
			7: {1: 0.8, 3: 0.2, 99: 0.9},
		},
	}

	tests := []struct {
		name    string
		model   model.ContentModel
		rctx    *core.RecommendContext
		want    []int64
		wantErr bool
	}{
		{
			// Product 99 is scored by the model but not in the
			// snapshot, so it never becomes a candidate.
			name:  "candidates restricted to snapshot",
			model: sparse,
			rctx:  newTestContext(7, 1, 2, 3),
			want:  []int64{1, 3},
		},
		{
			name:  "uncovered user yields no candidates and no error",
			model: sparse,
			rctx:  newTestContext(8, 1, 2, 3),
			want:  nil,
		},
		{
			name:  "dense variant covers users by row index",
			model: &model.DenseSimilarityMatrix{Rows: [][]float64{{0.1, 0.9}}},
			rctx:  newTestContext(0, 0, 1),
			want:  []int64{1, 0},
		},
		{
			name:  "dense variant fails closed beyond row count",
			model: &model.DenseSimilarityMatrix{Rows: [][]float64{{0.1, 0.9}}},
			rctx:  newTestContext(5, 0, 1),
			want:  nil,
		},
		{
			name:    "nil model reports missing",
			model:   nil,
			rctx:    newTestContext(7, 1, 2, 3),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ContentRecall{Model: tt.model}
			got, err := r.Recall(context.Background(), tt.rctx)
			if tt.wantErr {
				if !core.IsModelMissing(err) {
					t.Fatalf("Recall() error = %v, want model missing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recall() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Recall() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}
