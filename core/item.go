package core

import "github.com/rushteam/recserve/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选商品 + 原始分 + 来源信号 + 解释。
// Score 只用于信号内部排序，不同信号的分数量纲不可比，不对外暴露。
type Item struct {
	ID          int64
	Score       float64
	Signal      Signal
	Explanation *Explanation
	Labels      map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Explanation 是单个候选的特征归因结果。
// 解释器缺失或失败时取零值：Value=0、Breakdown 为空，绝不携带错误。
type Explanation struct {
	Value     float64
	Breakdown map[string]float64
}
