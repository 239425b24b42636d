package aggregate

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/explain"
	"github.com/rushteam/recserve/pipeline"
	"github.com/rushteam/recserve/pkg/logger"
	"github.com/rushteam/recserve/pkg/metrics"
	"github.com/rushteam/recserve/recall"
)

// SignalNode 把一路信号接入聚合链：调用打分、先到先得去重、就地挂解释。
//
// 失败隔离契约：
//   - 模型缺失（ErrModelMissing）→ 跳过本路，记 skip
//   - 打分出错 / panic / 请求超时 → 本路本次请求贡献为空，记 error
//   - 解释器缺失或失败 → 候选照常收录，解释取零值
//
// 任何一种失败都不离开本节点，对 Pipeline 而言永远成功。
type SignalNode struct {
	Source recall.Source

	// Explainer 返回该信号当前的解释器，为空（或返回空）表示没有解释器，
	// 收录的候选不带解释。按请求解析：惰性加载的信号在首次加载成功后
	// 才开始返回非空值。
	Explainer func() explain.Explainer
}

func (n *SignalNode) Name() string {
	return "aggregate.signal." + n.Source.Signal().String()
}

func (n *SignalNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *SignalNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sig := n.Source.Signal()

	// 请求预算用尽：还没跑的信号视同失败，跳过而不是拖垮整个请求
	if ctx.Err() != nil {
		metrics.SignalErrors.WithLabelValues(sig.String()).Inc()
		logger.Warn("signal skipped, request deadline exceeded", "signal", sig.String())
		return items, nil
	}

	cands, err := n.recallSafe(ctx, rctx)
	if err != nil {
		if core.IsModelMissing(err) {
			metrics.SignalSkips.WithLabelValues(sig.String()).Inc()
			logger.Debug("signal unavailable", "signal", sig.String())
		} else {
			metrics.SignalErrors.WithLabelValues(sig.String()).Inc()
			logger.Warn("signal scoring failed", "signal", sig.String(), "error", err)
		}
		return items, nil
	}

	// 先到先得：已被更高优先级信号认领的商品直接跳过
	seen := make(map[int64]struct{}, len(items)+len(cands))
	for _, it := range items {
		seen[it.ID] = struct{}{}
	}

	var exp explain.Explainer
	if n.Explainer != nil {
		exp = n.Explainer()
	}

	out := items
	for _, cand := range cands {
		if cand == nil {
			continue
		}
		if _, ok := seen[cand.ID]; ok {
			continue
		}
		seen[cand.ID] = struct{}{}

		if exp != nil {
			n.attachExplanation(exp, rctx, cand)
		}
		out = append(out, cand)
	}
	return out, nil
}

// recallSafe 在聚合边界兜住打分实现的 panic，转成普通错误。
func (n *SignalNode) recallSafe(
	ctx context.Context,
	rctx *core.RecommendContext,
) (cands []*core.Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			cands = nil
			err = &core.DomainError{
				Code:    "SCORER_PANIC",
				Message: "scorer panicked",
				Module:  "aggregate",
			}
		}
	}()
	return n.Source.Recall(ctx, rctx)
}

// attachExplanation 调用解释器并把归因结果挂到候选上。
// 解释器失败时挂零解释，候选的去留不受影响。
func (n *SignalNode) attachExplanation(exp explain.Explainer, rctx *core.RecommendContext, cand *core.Item) {
	contributions := exp.Explain(featureVector(n.Source.Signal(), rctx.UserID, cand.ID))
	if contributions == nil {
		metrics.ExplainErrors.WithLabelValues(n.Source.Signal().String()).Inc()
	}
	value, breakdown := explain.Flatten(contributions)
	cand.Explanation = &core.Explanation{Value: value, Breakdown: breakdown}
}

// featureVector 构造信号对应的解释输入：协同过滤看 (user, product) 对，
// 其余信号只看 product。
func featureVector(sig core.Signal, userID, productID int64) []float64 {
	if sig == core.SignalCollaborative {
		return []float64{float64(userID), float64(productID)}
	}
	return []float64{float64(productID)}
}

var _ pipeline.Node = (*SignalNode)(nil)
