package core

import "context"

// Product 是商品元数据的只读快照，请求期间不做任何修改。
type Product struct {
	ID    int64
	Name  string
	Image string
}

// Engagement 是商品的社交/浏览聚合指标。
// EngagementScore 为社交互动均值；BrowsingAction 为浏览行为计数之和。
type Engagement struct {
	EngagementScore float64 `json:"engagement_score"`
	BrowsingAction  int64   `json:"browsing_action"`
}

// Review 是商品评论，挂在唯一一个商品下，顺序即取数顺序。
type Review struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// CatalogSnapshot 是单次请求取到的商品域全量快照。
// ProductIDs 保持取数顺序（product_id 升序），用于确定性平手。
type CatalogSnapshot struct {
	ProductIDs []int64
	Products   map[int64]Product
	Engagement map[int64]Engagement
	Reviews    map[int64][]Review
}

// Has 判断商品是否存在于快照中。
func (s *CatalogSnapshot) Has(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.Products[id]
	return ok
}

// CatalogStore 是商品域存储的抽象。Snapshot 失败对请求是致命的：
// 没有基础数据可关联，聚合无从谈起。
type CatalogStore interface {
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)
}

// TransactionStore 提供会话信号依赖的用户交易序列。
type TransactionStore interface {
	// RecentTransactions 返回用户最近 n 次交易的商品 ID，时间从旧到新。
	RecentTransactions(ctx context.Context, userID int64, n int) ([]int64, error)
}

// Recommendation 是装配完成的单条推荐结果，字段即响应载荷。
type Recommendation struct {
	ProductID       int64              `json:"product_id"`
	Name            string             `json:"name"`
	Image           string             `json:"image"`
	EngagementScore float64            `json:"engagement_score"`
	BrowsingAction  string             `json:"browsing_action"`
	ShapValue       float64            `json:"shap_value"`
	ShapBreakdown   map[string]float64 `json:"shap_breakdown"`
	Reviews         []Review           `json:"reviews"`
}
