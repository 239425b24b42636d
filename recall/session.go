package recall

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pkg/utils"
)

// federatedScore 是会话信号候选的固定原始分。原始分只在信号内部排序时
// 有意义，会话模型的内部得分不外泄，候选统一携带这个常量。
const federatedScore = 0.9

// SessionRecall 是会话（联邦训练产物）信号：用用户最近两次交易（从旧到新）
// 作为条件，给快照商品打接续得分。
//
// 会话不足两次时降级为固定顺序的快照前 TopK 商品列表——非个性化但不失败。
// 降级列表不感知商品是否有效，靠装配阶段的快照校验兜底。
//
// 模型槽位来自 Registry 且支持惰性加载：启动没装上的话，第一次用到时
// Registry 再试一次。
type SessionRecall struct {
	Registry     *model.Registry
	Transactions core.TransactionStore

	TopK int
}

func (r *SessionRecall) Name() string        { return "recall.session" }
func (r *SessionRecall) Signal() core.Signal { return core.SignalFederated }

func (r *SessionRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Registry == nil {
		return nil, core.ErrModelMissing
	}
	sess := r.Registry.Session()
	if sess == nil {
		return nil, core.ErrModelMissing
	}
	if rctx == nil {
		return nil, nil
	}

	k := r.TopK
	if k <= 0 {
		k = DefaultTopK
	}

	var recent []int64
	if r.Transactions != nil {
		var err error
		recent, err = r.Transactions.RecentTransactions(ctx, rctx.UserID, 2)
		if err != nil {
			return nil, err
		}
	}

	if len(recent) < 2 {
		return r.fallback(rctx, k), nil
	}

	preds := make([]scored, 0)
	for _, pid := range rctx.CandidateIDs() {
		if !sess.CanScore(pid) {
			continue
		}
		preds = append(preds, scored{
			id:    pid,
			score: sess.ScoreSequence(recent, pid),
		})
	}
	if len(preds) == 0 {
		return r.fallback(rctx, k), nil
	}
	preds = topK(preds, k)

	out := make([]*core.Item, 0, len(preds))
	for _, p := range preds {
		out = append(out, r.newItem(p.id, false))
	}
	return out, nil
}

// fallback 返回快照取数顺序的前 k 个商品，调用方保证 k > 0。
func (r *SessionRecall) fallback(rctx *core.RecommendContext, k int) []*core.Item {
	ids := rctx.CandidateIDs()
	if len(ids) > k {
		ids = ids[:k]
	}
	out := make([]*core.Item, 0, len(ids))
	for _, pid := range ids {
		out = append(out, r.newItem(pid, true))
	}
	return out
}

func (r *SessionRecall) newItem(pid int64, fallback bool) *core.Item {
	it := core.NewItem(pid)
	it.Score = federatedScore
	it.Signal = core.SignalFederated
	it.PutLabel("recall_source", utils.Label{Value: "federated", Source: "recall"})
	if fallback {
		it.PutLabel("session_fallback", utils.Label{Value: "true", Source: "recall"})
	}
	return it
}

var _ Source = (*SessionRecall)(nil)
