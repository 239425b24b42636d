// Package recserve 是一个带特征归因解释的多信号商品推荐服务。
//
// 设计要点：
//   - 四路独立信号（collaborative / content / graph / federated）按固定优先级
//     顺序聚合，先到先得去重，全局输出有界（Top 5）
//   - 失败隔离：单路信号或其解释器的任何失败都在聚合边界内消化，
//     只有商品快照失败会让请求失败
//   - Pipeline-first：聚合逻辑通过 Node 串联（Signal → Filter → TopN），
//     Labels 全链路透传，支持观测与排查
package recserve

import "github.com/rushteam/recserve/pipeline"

// 轻量 facade：便于直接 import 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
