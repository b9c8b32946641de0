package rerank

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Keli-LYU/SteamGameRecSys/core"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
)

// SampleNode 是加权无放回采样节点：按 item.Score 作为权重逐个抽取，
// 抽中即从候选池移除，直到取满 Count 个或池子耗尽。
//
// 采样语义：
//   - 每次抽取在 [0, 当前总分) 上取均匀随机数，线性累加各候选分数，
//     累计和首次达到随机数处的候选被选中
//   - 总分为 0（含所有分数为 0）时退化为均匀洗牌取前 Count 个
//   - Count 超过池子大小时封顶到池子大小
//   - 输出顺序即抽取顺序，高分只是更可能靠前，不保证排序
//
// 线性扫描是 O(Count * pool) 的，候选池是目录规模时足够；
// 更大规模可换 alias method，外部分布语义不变。
type SampleNode struct {
	// Count 是要抽取的数量；<= 0 时返回全部候选（仅去 nil）
	Count int

	// Rand 是随机源，可注入用于测试；为 nil 时使用全局随机源
	Rand *rand.Rand

	mu sync.Mutex
}

func (n *SampleNode) Name() string        { return "rerank.sample" }
func (n *SampleNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SampleNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	pool := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			pool = append(pool, it)
		}
	}

	if n.Count <= 0 {
		return pool, nil
	}

	count := n.Count
	if count > len(pool) {
		count = len(pool)
	}
	if count == 0 {
		return []*core.Item{}, nil
	}

	var total float64
	for _, it := range pool {
		total += it.Score
	}

	// 总分为 0 时均匀洗牌
	if total <= 0 {
		n.shuffle(pool)
		return pool[:count], nil
	}

	out := make([]*core.Item, 0, count)
	for len(out) < count && len(pool) > 0 {
		draw := n.float64n(total)

		idx := len(pool) - 1
		var cum float64
		for i, it := range pool {
			cum += it.Score
			if cum >= draw {
				idx = i
				break
			}
		}

		picked := pool[idx]
		out = append(out, picked)
		pool = append(pool[:idx], pool[idx+1:]...)
		total -= picked.Score
		if total < 0 {
			total = 0
		}

		// 剩余分数全为 0 时补齐为均匀洗牌
		if total == 0 && len(out) < count {
			n.shuffle(pool)
			out = append(out, pool[:count-len(out)]...)
			break
		}
	}

	return out, nil
}

func (n *SampleNode) shuffle(pool []*core.Item) {
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if n.Rand == nil {
		rand.Shuffle(len(pool), swap)
		return
	}
	n.mu.Lock()
	n.Rand.Shuffle(len(pool), swap)
	n.mu.Unlock()
}

func (n *SampleNode) float64n(max float64) float64 {
	if n.Rand == nil {
		return rand.Float64() * max
	}
	n.mu.Lock()
	v := n.Rand.Float64() * max
	n.mu.Unlock()
	return v
}
