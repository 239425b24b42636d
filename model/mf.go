package model

// MatrixFactorization 是协同过滤的隐因子模型（SVD 类），离线训练、在线只做点积。
//
// 预测公式：
//	score(u, i) = GlobalMean + UserBias[u] + ItemBias[i] + dot(UserFactors[u], ItemFactors[i])
//
// 工程特征：
//   - 实时性：好（O(k) 点积）
//   - 冷启动：用户/物品缺失时退化为偏置项，不报错
//   - 可解释性：中等（隐因子本身无语义，靠外层归因）
type MatrixFactorization struct {
	GlobalMean  float64             `json:"global_mean"`
	UserFactors map[int64][]float64 `json:"user_factors"`
	ItemFactors map[int64][]float64 `json:"item_factors"`
	UserBias    map[int64]float64   `json:"user_bias"`
	ItemBias    map[int64]float64   `json:"item_bias"`
}

// Predict 返回用户对商品的预测评分。任一侧隐因子缺失时只保留偏置，
// 与训练侧对未知实体的处理保持一致。
func (m *MatrixFactorization) Predict(userID, itemID int64) float64 {
	score := m.GlobalMean + m.UserBias[userID] + m.ItemBias[itemID]

	pu, okU := m.UserFactors[userID]
	qi, okI := m.ItemFactors[itemID]
	if !okU || !okI {
		return score
	}

	n := len(pu)
	if len(qi) < n {
		n = len(qi)
	}
	for k := 0; k < n; k++ {
		score += pu[k] * qi[k]
	}
	return score
}

func (m *MatrixFactorization) Name() string {
	return "model.mf"
}
