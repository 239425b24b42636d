package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/explain"
	"github.com/rushteam/recserve/filter"
	"github.com/rushteam/recserve/model"
	"github.com/rushteam/recserve/pipeline"
	"github.com/rushteam/recserve/recall"
)

// Engine 是聚合引擎：每个请求取一次商品快照，按固定信号顺序跑一遍
// Pipeline，再把存活候选装配成响应。
//
// 快照、seen 集合、候选列表都是请求局部的，请求结束即丢弃；模型制品
// 是进程级只读状态，由 Registry 持有。
type Engine struct {
	Catalog  core.CatalogStore
	Pipeline *pipeline.Pipeline

	// Deadline 是单请求的总预算；超时后尚未执行的信号按失败跳过，
	// 请求本身不失败。<=0 表示不限。
	Deadline time.Duration
}

// Options 控制 Pipeline 的可选环节。
type Options struct {
	// Transactions 是会话信号依赖的交易序列存储
	Transactions core.TransactionStore

	// Filters 在信号聚合之后、全局截断之前执行
	Filters []filter.Filter

	// Serialize 列出底层实现不可重入的信号，对应的打分会被每信号一把的
	// 互斥锁串行化
	Serialize []core.Signal
}

// NewEngine 按固定信号顺序组装聚合链。四个信号节点永远在链上，
// 可用性由各自的模型槽位在请求期决定。
func NewEngine(catalog core.CatalogStore, reg *model.Registry, deadline time.Duration, opts Options) *Engine {
	sources := []recall.Source{
		&recall.CollaborativeRecall{Model: reg.Collaborative},
		&recall.ContentRecall{Model: reg.Content},
		&recall.GraphRecall{Model: reg.Graph},
		&recall.SessionRecall{Registry: reg, Transactions: opts.Transactions},
	}

	serialize := make(map[core.Signal]bool, len(opts.Serialize))
	for _, sig := range opts.Serialize {
		serialize[sig] = true
	}

	nodes := make([]pipeline.Node, 0, len(sources)+2)
	for _, src := range sources {
		if serialize[src.Signal()] {
			src = &recall.Serialized{Src: src}
		}
		sig := src.Signal()
		nodes = append(nodes, &SignalNode{
			Source:    src,
			Explainer: func() explain.Explainer { return reg.Explainer(sig) },
		})
	}
	if len(opts.Filters) > 0 {
		nodes = append(nodes, &filter.Node{Filters: opts.Filters})
	}
	nodes = append(nodes, &TopNNode{N: MaxRecommendations})

	return &Engine{
		Catalog:  catalog,
		Pipeline: &pipeline.Pipeline{Nodes: nodes},
		Deadline: deadline,
	}
}

// Recommend 为一个用户产出至多 MaxRecommendations 条已解释的推荐。
// 只有快照失败会让请求失败；信号与解释器的失败全部在链路内部消化。
func (e *Engine) Recommend(ctx context.Context, userID int64) ([]core.Recommendation, error) {
	if e.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Deadline)
		defer cancel()
	}

	snapshot, err := e.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	rctx := &core.RecommendContext{
		UserID:  userID,
		Catalog: snapshot,
	}

	items, err := e.Pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	return Assemble(snapshot, items), nil
}
