package explain

import "fmt"

// Explainer 是模型无关的特征归因能力：输入特征向量，输出逐特征贡献值。
// 实现必须把失败完全消化在内部，返回零值结果，绝不向聚合边界抛错。
type Explainer interface {
	Name() string
	Explain(features []float64) []float64
}

// Flatten 把归因输出整理成响应需要的形态：
// shap_value 取首元素（空则为 0），breakdown 为 feature_{i} -> 贡献值。
func Flatten(contributions []float64) (float64, map[string]float64) {
	breakdown := make(map[string]float64, len(contributions))
	for i, v := range contributions {
		breakdown[fmt.Sprintf("feature_%d", i)] = v
	}
	if len(contributions) == 0 {
		return 0, breakdown
	}
	return contributions[0], breakdown
}
