package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/explain"
	"github.com/rushteam/recserve/recall"
)

type fakeSource struct {
	sig      core.Signal
	scores   []scoredItem
	err      error
	panicked bool
}

type scoredItem struct {
	id    int64
	score float64
}

func (f *fakeSource) Name() string        { return "fake." + f.sig.String() }
func (f *fakeSource) Signal() core.Signal { return f.sig }

func (f *fakeSource) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if f.panicked {
		panic("scorer blew up")
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*core.Item, 0, len(f.scores))
	for _, s := range f.scores {
		it := core.NewItem(s.id)
		it.Score = s.score
		it.Signal = f.sig
		out = append(out, it)
	}
	return out, nil
}

type fakeExplainer struct {
	contributions []float64
}

func (f *fakeExplainer) Name() string                      { return "fake.explainer" }
func (f *fakeExplainer) Explain(features []float64) []float64 { return f.contributions }

func staticExplainer(e explain.Explainer) func() explain.Explainer {
	return func() explain.Explainer { return e }
}

func runChain(t *testing.T, rctx *core.RecommendContext, nodes ...*SignalNode) []*core.Item {
	t.Helper()
	var items []*core.Item
	var err error
	for _, n := range nodes {
		items, err = n.Process(context.Background(), rctx, items)
		if err != nil {
			t.Fatalf("Process(%s) error = %v", n.Name(), err)
		}
	}
	return items
}

func itemIDs(items []*core.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sameIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSignalNode_FirstClaimDedup(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 7}

	collab := &SignalNode{Source: &fakeSource{
		sig:    core.SignalCollaborative,
		scores: []scoredItem{{2, 0.9}, {1, 0.5}, {3, 0.1}},
	}}
	content := &SignalNode{Source: &fakeSource{
		sig:    core.SignalContent,
		scores: []scoredItem{{1, 0.8}, {4, 0.6}},
	}}

	items := runChain(t, rctx, collab, content)

	// Product 1 was already claimed by the higher-precedence signal; the
	// content signal only contributes product 4.
	if !sameIDs(itemIDs(items), []int64{2, 1, 3, 4}) {
		t.Fatalf("items = %v, want [2 1 3 4]", itemIDs(items))
	}
	for _, it := range items {
		wantSig := core.SignalCollaborative
		if it.ID == 4 {
			wantSig = core.SignalContent
		}
		if it.Signal != wantSig {
			t.Errorf("item %d signal = %v, want %v", it.ID, it.Signal, wantSig)
		}
	}
}

func TestSignalNode_FailureContainment(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 7}
	upstream := []scoredItem{{10, 1.0}}

	tests := []struct {
		name   string
		source recall.Source
	}{
		{
			name:   "missing model",
			source: &fakeSource{sig: core.SignalContent, err: core.ErrModelMissing},
		},
		{
			name:   "scoring error",
			source: &fakeSource{sig: core.SignalContent, err: errors.New("scoring failed")},
		},
		{
			name:   "scorer panic",
			source: &fakeSource{sig: core.SignalContent, panicked: true},
		},
	}

	// An absent signal and a failing signal must be indistinguishable in
	// the output: upstream items pass through untouched.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := runChain(t, rctx, &SignalNode{Source: &fakeSource{
				sig:    core.SignalCollaborative,
				scores: upstream,
			}})

			n := &SignalNode{Source: tt.source}
			after, err := n.Process(context.Background(), rctx, before)
			if err != nil {
				t.Fatalf("Process() error = %v, want contained failure", err)
			}
			if !sameIDs(itemIDs(after), []int64{10}) {
				t.Errorf("items = %v, want [10]", itemIDs(after))
			}
		})
	}
}

func TestSignalNode_DeadlineExpired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := &SignalNode{Source: &fakeSource{
		sig:    core.SignalCollaborative,
		scores: []scoredItem{{1, 0.5}},
	}}

	upstream := []*core.Item{core.NewItem(10)}
	got, err := n.Process(ctx, &core.RecommendContext{UserID: 7}, upstream)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// Budget exhausted: the signal contributes nothing but does not fail
	// the request.
	if !sameIDs(itemIDs(got), []int64{10}) {
		t.Errorf("items = %v, want [10]", itemIDs(got))
	}
}

func TestSignalNode_AttachesExplanations(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 7}

	tests := []struct {
		name          string
		explainer     func() explain.Explainer
		wantValue     float64
		wantBreakdown int
		wantNil       bool
	}{
		{
			name:          "explainer contributions flattened onto the item",
			explainer:     staticExplainer(&fakeExplainer{contributions: []float64{1.5, -0.25}}),
			wantValue:     1.5,
			wantBreakdown: 2,
		},
		{
			// A failing explainer yields the zero explanation, never a
			// dropped item.
			name:          "failing explainer yields zero explanation",
			explainer:     staticExplainer(&fakeExplainer{contributions: nil}),
			wantValue:     0,
			wantBreakdown: 0,
		},
		{
			name:      "no explainer leaves items unexplained",
			explainer: staticExplainer(nil),
			wantNil:   true,
		},
		{
			name:      "nil resolver leaves items unexplained",
			explainer: nil,
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &SignalNode{
				Source: &fakeSource{
					sig:    core.SignalGraph,
					scores: []scoredItem{{1, 0.5}},
				},
				Explainer: tt.explainer,
			}

			items := runChain(t, rctx, n)
			if len(items) != 1 {
				t.Fatalf("items = %v, want one item", itemIDs(items))
			}

			exp := items[0].Explanation
			if tt.wantNil {
				if exp != nil {
					t.Fatalf("Explanation = %+v, want nil", exp)
				}
				return
			}
			if exp == nil {
				t.Fatal("Explanation = nil, want attached")
			}
			if exp.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", exp.Value, tt.wantValue)
			}
			if len(exp.Breakdown) != tt.wantBreakdown {
				t.Errorf("Breakdown = %v, want %d entries", exp.Breakdown, tt.wantBreakdown)
			}
		})
	}
}

func TestTopNNode(t *testing.T) {
	items := []*core.Item{
		core.NewItem(1), core.NewItem(2), core.NewItem(3),
		core.NewItem(4), core.NewItem(5), core.NewItem(6), core.NewItem(7),
	}

	n := &TopNNode{N: MaxRecommendations}
	got, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !sameIDs(itemIDs(got), []int64{1, 2, 3, 4, 5}) {
		t.Errorf("items = %v, want first five", itemIDs(got))
	}

	short := items[:3]
	got, err = n.Process(context.Background(), nil, short)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("items = %v, want all three passed through", itemIDs(got))
	}
}
