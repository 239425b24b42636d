package recall

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pkg/utils"
)

// CollaborativeRecall 是协同过滤信号：用隐因子模型给快照里的每个商品打分。
// 不依赖会话历史，只需要 user_id。
type CollaborativeRecall struct {
	Model *model.MatrixFactorization

	// TopK 最终返回的候选数，<=0 时取 DefaultTopK
	TopK int
}

func (r *CollaborativeRecall) Name() string        { return "recall.collaborative" }
func (r *CollaborativeRecall) Signal() core.Signal { return core.SignalCollaborative }

func (r *CollaborativeRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil {
		return nil, core.ErrModelMissing
	}
	if rctx == nil {
		return nil, nil
	}

	candidates := rctx.CandidateIDs()
	preds := make([]scored, 0, len(candidates))
	for _, pid := range candidates {
		preds = append(preds, scored{
			id:    pid,
			score: r.Model.Predict(rctx.UserID, pid),
		})
	}

	k := r.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	preds = topK(preds, k)

	out := make([]*core.Item, 0, len(preds))
	for _, p := range preds {
		it := core.NewItem(p.id)
		it.Score = p.score
		it.Signal = core.SignalCollaborative
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*CollaborativeRecall)(nil)
