package recall

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pkg/utils"
)

// GraphRecall 是图嵌入信号（Node2Vec 产物）：计算合成用户节点与商品节点
// 在嵌入空间里的相似度。商品节点不在空间中时直接排除，不按 0 分参与，
// 避免未见过的商品挤进平手区。
type GraphRecall struct {
	Model *model.Embedding

	TopK int
}

func (r *GraphRecall) Name() string        { return "recall.graph" }
func (r *GraphRecall) Signal() core.Signal { return core.SignalGraph }

func (r *GraphRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Model == nil {
		return nil, core.ErrModelMissing
	}
	if rctx == nil {
		return nil, nil
	}

	userNode := model.UserNode(rctx.UserID)
	preds := make([]scored, 0)
	for _, pid := range rctx.CandidateIDs() {
		node := model.ProductNode(pid)
		if !r.Model.Has(node) {
			continue
		}
		preds = append(preds, scored{
			id:    pid,
			score: r.Model.Similarity(userNode, node),
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
		it.Signal = core.SignalGraph
		it.PutLabel("recall_source", utils.Label{Value: "graph", Source: "recall"})
		it.PutLabel("recall_type", utils.Label{Value: "node2vec", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*GraphRecall)(nil)
