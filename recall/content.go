package recall

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pkg/utils"
)

// ContentRecall 是内容相似度信号。模型变体（稀疏得分表 / 稠密矩阵）在
// 加载期就已判定，这里只走统一的 UserScores 分发，不做形态探测。
// 候选被限制在本次快照范围内。
type ContentRecall struct {
	Model model.ContentModel

	TopK int
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Signal() core.Signal { return core.SignalContent }

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil {
		return nil, core.ErrModelMissing
	}
	if rctx == nil {
		return nil, nil
	}

	scores, ok := r.Model.UserScores(rctx.UserID)
	if !ok {
		// 模型覆盖不到这个用户：这一路不出候选，但不是错误
		return nil, nil
	}

	preds := make([]scored, 0, len(scores))
	for _, pid := range rctx.CandidateIDs() {
		v, ok := scores[pid]
		if !ok {
			continue
		}
		preds = append(preds, scored{id: pid, score: v})
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
		it.Signal = core.SignalContent
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("content_variant", utils.Label{Value: r.Model.Name(), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*ContentRecall)(nil)
