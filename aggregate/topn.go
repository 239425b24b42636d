package aggregate

import (
	"context"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/pipeline"
)

// MaxRecommendations 是全局输出上限，独立于各信号各自的 TopK。
// 四路信号跑完后超出的部分直接丢弃，即使前面的信号没填满自己的配额。
const MaxRecommendations = 5

// TopNNode 是 Top-N 截断节点，在全部信号节点之后使用，保证输出规模
// 与响应大小有界。
type TopNNode struct {
	// N 要保留的候选数量；<=0 表示不截断
	N int
}

func (n *TopNNode) Name() string {
	return "aggregate.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
