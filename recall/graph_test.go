package recall

import (
	"context"
	"testing"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
)

func TestGraphRecall(t *testing.T) {
	emb := &model.Embedding{
		Dimension: 2,
		Vectors: map[string][]float64{
			"user_7":    {1, 0},
			"product_1": {1, 0},
			"product_2": {0, 1},
			// product_3 deliberately absent from the embedding space
		},
	}

	r := &GraphRecall{Model: emb}
	got, err := r.Recall(context.Background(), newTestContext(7, 1, 2, 3))
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}

	// Product 3 has no node: excluded, not ranked at zero.
	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Errorf("Recall() ids = %v, want [1 2]", ids(got))
	}
	for _, it := range got {
		if it.Signal != core.SignalGraph {
			t.Errorf("item %d signal = %v, want graph", it.ID, it.Signal)
		}
	}
}

func TestGraphRecall_NilModel(t *testing.T) {
	r := &GraphRecall{}
	_, err := r.Recall(context.Background(), newTestContext(7, 1))
	if !core.IsModelMissing(err) {
		t.Fatalf("Recall() error = %v, want model missing", err)
	}
}

func TestGraphRecall_UnknownUser(t *testing.T) {
	emb := &model.Embedding{
		Dimension: 2,
		Vectors: map[string][]float64{
			"product_1": {1, 0},
			"product_2": {0, 1},
		},
	}

	// The user node is absent: every known product scores zero and ties
	// resolve in snapshot order.
	r := &GraphRecall{Model: emb}
	got, err := r.Recall(context.Background(), newTestContext(99, 1, 2))
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Errorf("Recall() ids = %v, want [1 2]", ids(got))
	}
}
