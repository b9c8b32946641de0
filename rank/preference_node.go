package rank

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
)

// PreferenceNode 是基于用户类型偏好权重的排序 Node。
// 打分规则：
//  1. base = 游戏各类型在用户画像中的权重之和
//  2. 随机扰动：base > 0 时加 U[0, base]（最多 100% 上浮），
//     base == 0 时加 U[0, 5]，让零权重游戏也有出头机会
//  3. 互动惩罚：用户点击过的游戏分数 ×0.7（软降权，不排除）
//  4. 热度加成：clamp(positive_reviews/10000, 0, 1) * U[0.3, 0.8]
//
// 画像为空（nil 或无权重）时不打分，原样返回；此时应由采样层
// 走均匀洗牌路径。
//
// - 更新 item.Score 并写入 labels：rank_source
type PreferenceNode struct {
	// Rand 是随机源，可注入用于测试；为 nil 时使用全局随机源
	Rand *rand.Rand

	mu sync.Mutex
}

// 热度归一化基准：正向评价数除以该值后截断到 [0, 1]。
const popularityScale = 10000.0

func (n *PreferenceNode) Name() string        { return "rank.preference" }
func (n *PreferenceNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PreferenceNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	profile := (*core.UserProfile)(nil)
	if rctx != nil {
		profile = rctx.Profile
	}
	if profile.Empty() {
		// 无画像不打分，交由下游均匀洗牌
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = n.score(it, profile)
		it.PutLabel("rank_source", core.Label{Value: "preference", Source: "rank"})
	}
	return items, nil
}

func (n *PreferenceNode) score(item *core.Item, profile *core.UserProfile) float64 {
	var base float64
	for _, g := range item.Genres {
		base += float64(profile.WeightOf(g))
	}

	score := base
	if base > 0 {
		score += n.float64n(base)
	} else {
		score += n.float64n(5)
	}

	if profile.HasClicked(item.AppID) {
		score *= 0.7
	}

	popularity := float64(item.PositiveReviews) / popularityScale
	if popularity > 1 {
		popularity = 1
	}
	if popularity < 0 {
		popularity = 0
	}
	score += popularity * (0.3 + n.float64n(0.5))

	return score
}

// float64n 返回 [0, max) 上的均匀随机数。
func (n *PreferenceNode) float64n(max float64) float64 {
	if n.Rand == nil {
		return rand.Float64() * max
	}
	// rand.Rand 非并发安全，注入源时串行访问
	n.mu.Lock()
	v := n.Rand.Float64() * max
	n.mu.Unlock()
	return v
}
