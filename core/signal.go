package core

// Signal 表示一路独立的推荐信号（打分子系统）。
// 枚举顺序即全局优先级顺序：去重时先到先得，同一商品被多路信号召回时，
// 归属于顺序靠前的那一路。
type Signal int

const (
	SignalCollaborative Signal = iota
	SignalContent
	SignalGraph
	SignalFederated
)

// SignalOrder 是固定的信号执行顺序，聚合器按此顺序依次调度。
// 顺序本身是对外契约的一部分，不可配置。
var SignalOrder = []Signal{
	SignalCollaborative,
	SignalContent,
	SignalGraph,
	SignalFederated,
}

// ParseSignal 把信号名解析回枚举值，配置项用名字引用信号时走这里。
func ParseSignal(name string) (Signal, bool) {
	for _, sig := range SignalOrder {
		if sig.String() == name {
			return sig, true
		}
	}
	return 0, false
}

func (s Signal) String() string {
	switch s {
	case SignalCollaborative:
		return "collaborative"
	case SignalContent:
		return "content"
	case SignalGraph:
		return "graph"
	case SignalFederated:
		return "federated"
	}
	return "unknown"
}
