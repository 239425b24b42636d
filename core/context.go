package core

// RecommendContext 承载单次请求的用户与候选信息，贯穿整个聚合链路透传。
// 每次请求新建、请求结束即丢弃，不携带任何跨请求状态。
type RecommendContext struct {
	UserID int64

	// Catalog 是本次请求的商品快照，所有信号都只在快照范围内产生候选。
	Catalog *CatalogSnapshot
}

// CandidateIDs 返回快照中的商品 ID（按 product_id 升序的取数顺序）。
// 各信号内部排序的稳定平手规则依赖这个顺序。
func (rctx *RecommendContext) CandidateIDs() []int64 {
	if rctx == nil || rctx.Catalog == nil {
		return nil
	}
	return rctx.Catalog.ProductIDs
}
