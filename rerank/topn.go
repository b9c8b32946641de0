package rerank

import (
	"context"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序/采样后截取前 N 个游戏。
//
// 使用场景：
//   - 采样后只返回 Top 10/20/50 个结果
//   - 控制推荐结果数量
//   - 配合多样性重排使用
type TopNNode struct {
	// N 要保留的数量（Top N）
	// 如果 N <= 0，则返回所有游戏（不截断）
	// 如果 N > len(items)，则返回所有游戏
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}

	if len(items) <= n.N {
		return items, nil
	}

	return items[:n.N], nil
}
