package filter

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/recserve/core"
)

// CELFilter 用 CEL (Common Expression Language) 表达式剔除候选。
// 表达式在启动期编译一次，请求期只做求值；求值环境：
//
//   - item.id      候选商品 ID（int）
//   - item.score   信号内原始分（double）
//   - item.signal  来源信号名（string）
//   - user_id      请求用户 ID（int）
//
// 示例：
//   - `item.signal == "federated" && item.id > 1000`
//   - `item.id in [42, 43]`
//
// 表达式求值为 true 表示剔除该候选。
type CELFilter struct {
	expr string
	prg  cel.Program
}

// NewCELFilter 编译表达式并返回过滤器；表达式非法时返回错误（启动期失败）。
func NewCELFilter(expr string) (*CELFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("user_id", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &CELFilter{expr: expr, prg: prg}, nil
}

func (f *CELFilter) Name() string {
	return "filter.cel"
}

func (f *CELFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	var userID int64
	if rctx != nil {
		userID = rctx.UserID
	}

	out, _, err := f.prg.Eval(map[string]interface{}{
		"item": map[string]interface{}{
			"id":     item.ID,
			"score":  item.Score,
			"signal": item.Signal.String(),
		},
		"user_id": userID,
	})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

var _ Filter = (*CELFilter)(nil)
