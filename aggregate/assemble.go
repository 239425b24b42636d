package aggregate

import (
	"math"
	"strconv"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/pkg/logger"
)

// Assemble 把聚合产出的候选与商品快照关联成响应载荷，顺序保持不变。
//
// 防御性校验：快照里不存在的商品直接丢弃。正常路径不会出现——候选都是
// 在快照范围内打分的——但会话信号的降级列表不感知商品有效性，必须在这里兜住。
func Assemble(snapshot *core.CatalogSnapshot, items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if !snapshot.Has(it.ID) {
			logger.Debug("dropping candidate missing from catalog", "product_id", it.ID)
			continue
		}

		product := snapshot.Products[it.ID]
		engagement := snapshot.Engagement[it.ID]

		score := engagement.EngagementScore
		if math.IsNaN(score) {
			score = 0.0
		}

		browsing := "unknown"
		if engagement.BrowsingAction != 0 {
			browsing = strconv.FormatInt(engagement.BrowsingAction, 10)
		}

		value := 0.0
		breakdown := map[string]float64{}
		if it.Explanation != nil {
			value = it.Explanation.Value
			if it.Explanation.Breakdown != nil {
				breakdown = it.Explanation.Breakdown
			}
		}

		reviews := snapshot.Reviews[it.ID]
		if reviews == nil {
			reviews = []core.Review{}
		}

		out = append(out, core.Recommendation{
			ProductID:       it.ID,
			Name:            product.Name,
			Image:           product.Image,
			EngagementScore: score,
			BrowsingAction:  browsing,
			ShapValue:       value,
			ShapBreakdown:   breakdown,
			Reviews:         reviews,
		})
	}
	return out
}
