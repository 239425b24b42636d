package pipeline

import (
	"context"

	"github.com/rushteam/recserve/core"
)

// Pipeline 把聚合逻辑拆成可组合的 Node 链：四路信号节点 + 过滤 + 截断。
// 信号级失败在 Node 内部消化；Node 返回 error 意味着整个请求失败。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
