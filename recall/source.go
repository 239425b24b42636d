package recall

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/recserve/core"
)

// Source 表示一路信号的打分能力：对当前请求产出按原始分降序的 Top-K 候选。
// 每路实现彼此独立，可以整体缺席；模型缺失用 core.ErrModelMissing 表达，
// 由聚合器决定跳过，Source 自身不做兜底。
type Source interface {
	Name() string
	Signal() core.Signal
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// DefaultTopK 是每路信号的候选上限，与全局输出上限相互独立。
const DefaultTopK = 5

// scored 是信号内部排序用的临时结构，追加顺序即快照取数顺序。
type scored struct {
	id    int64
	score float64
}

// topK 按分数降序取前 k 个，平手时稳定保持快照取数顺序。
func topK(items []scored, k int) []scored {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})
	if len(items) > k {
		items = items[:k]
	}
	return items
}

// Serialized 把一个 Source 包装成串行访问：底层模型实现不可重入时，
// 用每信号一把的互斥锁保护它，绝不是跨信号的全局锁。
type Serialized struct {
	Src Source

	mu sync.Mutex
}

func (s *Serialized) Name() string        { return s.Src.Name() }
func (s *Serialized) Signal() core.Signal { return s.Src.Signal() }

func (s *Serialized) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Src.Recall(ctx, rctx)
}

var _ Source = (*Serialized)(nil)
