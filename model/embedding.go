package model

import (
	"fmt"
	"math"
)

// Embedding 是图嵌入模型（Node2Vec 产物）的在线形态：节点名 -> 稠密向量。
// 用户与商品都是图上的合成节点，命名约定 user_{id} / product_{id}。
type Embedding struct {
	Dimension int
	Vectors   map[string][]float64
}

// UserNode / ProductNode 是图节点的命名约定，训练与在线两侧必须一致。
func UserNode(userID int64) string    { return fmt.Sprintf("user_%d", userID) }
func ProductNode(itemID int64) string { return fmt.Sprintf("product_%d", itemID) }

// Has 判断节点是否在嵌入空间中。不在空间中的商品应被排除，而不是按 0 分参与排序。
func (m *Embedding) Has(node string) bool {
	_, ok := m.Vectors[node]
	return ok
}

// Similarity 计算两个节点向量的余弦相似度；任一节点缺失返回 0。
func (m *Embedding) Similarity(a, b string) float64 {
	va, ok := m.Vectors[a]
	if !ok {
		return 0
	}
	vb, ok := m.Vectors[b]
	if !ok {
		return 0
	}
	return cosine(va, vb)
}

func (m *Embedding) Name() string { return "model.embedding" }

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
