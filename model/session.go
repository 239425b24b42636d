package model

// SessionModel 是会话序列模型的在线形态：商品索引映射 + 商品嵌入表。
// 离线由联邦训练轮次产出（序列模型 + product_mapping），在线只消费打分函数。
//
// 打分：把用户最近两次交易的嵌入取均值作为会话向量，候选得分为会话向量
// 与候选嵌入的余弦相似度。序列编码方式与 Word2Vec 的序列向量化一致。
type SessionModel struct {
	Dimension    int
	ProductIndex map[int64]int
	Embeddings   [][]float64
}

// CanScore 判断商品是否在模型词表内。
func (m *SessionModel) CanScore(itemID int64) bool {
	idx, ok := m.ProductIndex[itemID]
	return ok && idx >= 0 && idx < len(m.Embeddings)
}

// ScoreSequence 给出候选商品接在 recent 序列（从旧到新）之后的得分。
// recent 中不在词表的商品按零向量参与均值，候选不在词表返回 0。
func (m *SessionModel) ScoreSequence(recent []int64, candidate int64) float64 {
	cidx, ok := m.ProductIndex[candidate]
	if !ok || cidx < 0 || cidx >= len(m.Embeddings) {
		return 0
	}

	session := make([]float64, m.Dimension)
	n := 0
	for _, itemID := range recent {
		idx, ok := m.ProductIndex[itemID]
		if !ok || idx < 0 || idx >= len(m.Embeddings) {
			continue
		}
		vec := m.Embeddings[idx]
		for i := 0; i < m.Dimension && i < len(vec); i++ {
			session[i] += vec[i]
		}
		n++
	}
	if n == 0 {
		return 0
	}
	for i := range session {
		session[i] /= float64(n)
	}

	return cosine(session, m.Embeddings[cidx])
}

func (m *SessionModel) Name() string { return "model.session" }
