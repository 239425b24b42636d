package explain

// PredictFunc 是被解释模型的决策函数：特征向量 -> 标量分数。
type PredictFunc func(features []float64) float64

// KernelExplainer 是基于扰动采样的归因实现（Kernel SHAP 的单点简化形态）。
//
// 核心思想：
//   - 以一组代表性样本（Basis）作为背景分布
//   - 逐特征把输入替换为背景取值，观察决策函数输出的变化
//   - phi_i = f(x) - mean_b f(x | x_i := basis_b_i)，即特征 i 的边际贡献
//
// Basis 在模型加载期随制品一起装入（版本化持久产物），请求期 Explain 是
// (特征向量) -> (归因向量) 的纯函数，不做任何拟合。
type KernelExplainer struct {
	// Predict 是被包装的决策函数
	Predict PredictFunc

	// Basis 是预置的背景样本，行 = 样本，列 = 特征
	Basis [][]float64

	// Signal 是被解释的信号名，用于观测
	Signal string
}

func NewKernelExplainer(signal string, predict PredictFunc, basis [][]float64) *KernelExplainer {
	return &KernelExplainer{Signal: signal, Predict: predict, Basis: basis}
}

func (e *KernelExplainer) Name() string {
	return "explain.kernel." + e.Signal
}

// Explain 计算输入向量的逐特征贡献。任何内部 panic 都被吞掉并返回 nil，
// 调用侧按"零解释"处理；候选的去留从不受解释器影响。
func (e *KernelExplainer) Explain(features []float64) (out []float64) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
		}
	}()

	if e == nil || e.Predict == nil || len(features) == 0 {
		return nil
	}

	base := e.Predict(features)

	out = make([]float64, len(features))
	if len(e.Basis) == 0 {
		return out
	}

	perturbed := make([]float64, len(features))
	for i := range features {
		var sum float64
		n := 0
		for _, row := range e.Basis {
			if i >= len(row) {
				continue
			}
			copy(perturbed, features)
			perturbed[i] = row[i]
			sum += e.Predict(perturbed)
			n++
		}
		if n == 0 {
			continue
		}
		out[i] = base - sum/float64(n)
	}
	return out
}

var _ Explainer = (*KernelExplainer)(nil)
