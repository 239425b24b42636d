package filter

import (
	"context"
	"testing"

	"github.com/rushteam/recserve/core"
)

func celItem(id int64, sig core.Signal, score float64) *core.Item {
	it := core.NewItem(id)
	it.Signal = sig
	it.Score = score
	return it
}

func TestNewCELFilter_InvalidExpression(t *testing.T) {
	if _, err := NewCELFilter("item.id >"); err == nil {
		t.Error("NewCELFilter() error = nil, want compile error")
	}
}

func TestCELFilter_ShouldFilter(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 7}

	tests := []struct {
		name string
		expr string
		item *core.Item
		want bool
	}{
		{
			name: "filter by signal",
			expr: `item.signal == "federated"`,
			item: celItem(1, core.SignalFederated, 0.9),
			want: true,
		},
		{
			name: "signal mismatch keeps the item",
			expr: `item.signal == "federated"`,
			item: celItem(1, core.SignalCollaborative, 0.9),
			want: false,
		},
		{
			name: "filter by id list",
			expr: `item.id in [42, 43]`,
			item: celItem(42, core.SignalGraph, 0.1),
			want: true,
		},
		{
			name: "filter by score threshold",
			expr: `item.score < 0.2`,
			item: celItem(3, core.SignalContent, 0.1),
			want: true,
		},
		{
			name: "user id available in the environment",
			expr: `user_id == 7 && item.id == 1`,
			item: celItem(1, core.SignalContent, 0.5),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewCELFilter(tt.expr)
			if err != nil {
				t.Fatalf("NewCELFilter(%q) error = %v", tt.expr, err)
			}
			got, err := f.ShouldFilter(context.Background(), rctx, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCELFilter_NonBooleanExpression(t *testing.T) {
	f, err := NewCELFilter("item.id + 1")
	if err != nil {
		t.Fatalf("NewCELFilter() error = %v", err)
	}
	if _, err := f.ShouldFilter(context.Background(), &core.RecommendContext{}, celItem(1, core.SignalGraph, 0)); err == nil {
		t.Error("ShouldFilter() error = nil, want non-boolean error")
	}
}
