// Package dsl 用 CEL (Common Expression Language) 在候选物品上求值
// 布尔表达式，供过滤节点做配置驱动的候选约束。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/Keli-LYU/SteamGameRecSys/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的表达式，可对多个物品重复求值。
//
// 表达式语法（CEL 标准语法），可用变量：
//   - item：app_id / name / price / genres / positive_reviews /
//     negative_reviews / score / meta
//   - label：物品标签的 key -> value 视图，例如 label.recall_source == "catalog"
//   - rctx：user_id / scene / params
//
// 示例：
//   - `item.price < 60.0` → 只保留 60 美元以下的游戏
//   - `"Action" in item.genres && item.positive_reviews > 1000`
//   - `label.recall_source == "hot"` → 只看热门召回的候选
type Program struct {
	prg cel.Program
}

// Compile 编译一条表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{prg: prg}, nil
}

// Eval 对单个物品求值。
// 访问不存在的 key 会报错，表达式应使用 label.key != null 检查存在性。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	genres := make([]any, 0, len(item.Genres))
	for _, g := range item.Genres {
		genres = append(genres, g)
	}

	itemView := map[string]any{
		"app_id":           item.AppID,
		"name":             item.Name,
		"price":            item.Price,
		"genres":           genres,
		"positive_reviews": item.PositiveReviews,
		"negative_reviews": item.NegativeReviews,
		"score":            item.Score,
		"meta":             item.Meta,
	}

	// label.xxx 直接取标签的 value，便于写短表达式
	labelView := make(map[string]any, len(item.Labels))
	for k, lbl := range item.Labels {
		labelView[k] = lbl.Value
	}

	rctxView := map[string]any{}
	if rctx != nil {
		rctxView["user_id"] = rctx.UserID
		rctxView["scene"] = rctx.Scene
		rctxView["params"] = rctx.Params
	}

	return map[string]any{
		"item":  itemView,
		"label": labelView,
		"rctx":  rctxView,
	}
}
