package filter

import (
	"context"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的过滤器。
// 表达式返回 true 表示该游戏应该被过滤掉。
//
// 示例表达式：
//   - `item.price > 60.0`
//   - `"Horror" in item.genres`
//   - `item.positive_reviews < 100`
type ExprFilter struct {
	Expr    string
	program *dsl.Program
}

// NewExprFilter 编译表达式并创建一个表达式过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Expr: expr, program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.program == nil {
		return false, nil
	}
	return f.program.Eval(item, rctx)
}
