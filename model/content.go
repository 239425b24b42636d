package model

// ContentModel 是内容相似度模型的统一抽象。离线产物有两种形态：
// 按用户的稀疏得分表，或稠密的用户×商品相似度矩阵。两种形态在加载期
// 就被判定为具体变体，在线侧只走这一个方法，不做运行时类型探测。
type ContentModel interface {
	Name() string

	// UserScores 返回用户的商品得分表。第二个返回值为 false 表示该模型
	// 覆盖不到这个用户，这一路信号本次请求不产生候选。
	UserScores(userID int64) (map[int64]float64, bool)
}

// SparseUserScores 是稀疏变体：user -> (product -> score)。
type SparseUserScores struct {
	Scores map[int64]map[int64]float64
}

func (m *SparseUserScores) Name() string { return "model.content.sparse" }

func (m *SparseUserScores) UserScores(userID int64) (map[int64]float64, bool) {
	scores, ok := m.Scores[userID]
	if !ok || len(scores) == 0 {
		return nil, false
	}
	return scores, true
}

// DenseSimilarityMatrix 是稠密变体：行 = 用户，列 = 商品 ID。
//
// 行选择是失败即关闭的：用户 ID 超出行数时返回未覆盖，而不是按
// user_id mod rows 折叠到别人的行上。折叠会让不同用户悄悄共享同一行
// 相似度，是已知的正确性风险，这里不保留。
type DenseSimilarityMatrix struct {
	Rows [][]float64
}

func (m *DenseSimilarityMatrix) Name() string { return "model.content.dense" }

func (m *DenseSimilarityMatrix) UserScores(userID int64) (map[int64]float64, bool) {
	if userID < 0 || userID >= int64(len(m.Rows)) {
		return nil, false
	}
	row := m.Rows[userID]
	scores := make(map[int64]float64, len(row))
	for col, v := range row {
		scores[int64(col)] = v
	}
	return scores, true
}

var (
	_ ContentModel = (*SparseUserScores)(nil)
	_ ContentModel = (*DenseSimilarityMatrix)(nil)
)
