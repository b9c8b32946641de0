package config

import (
	"fmt"
	"time"

	"github.com/Keli-LYU/SteamGameRecSys/filter"
	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
	"github.com/Keli-LYU/SteamGameRecSys/pkg/conv"
	"github.com/Keli-LYU/SteamGameRecSys/rank"
	"github.com/Keli-LYU/SteamGameRecSys/recall"
	"github.com/Keli-LYU/SteamGameRecSys/rerank"
)

func init() {
	Register("recall.hot", BuildHotNode)
	Register("recall.fanout", BuildFanoutNode)
	Register("filter", BuildFilterNode)
	Register("rank.preference", BuildPreferenceNode)
	Register("rerank.sample", BuildSampleNode)
	Register("rerank.diversity", BuildDiversityNode)
	Register("rerank.topn", BuildTopNNode)
}

// BuildHotNode 构建静态热门召回。配置示例：
//
//	type: recall.hot
//	config:
//	  ids: [570, 730, 440]
//	  top_n: 20
func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToInt64(cfg["ids"])
	if ids == nil {
		ids = []int64{}
	}
	return &recall.Hot{
		IDs:  ids,
		TopN: int(conv.ConfigGetInt64(cfg, "top_n", 0)),
	}, nil
}

// BuildFanoutNode 构建多路并发召回。目前仅支持从配置构建 hot 子源；
// 需要 catalog/store 的子源由调用方组装后注册自定义类型。
func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToInt64(sourceMap["ids"])
			if ids == nil {
				ids = []int64{}
			}
			sources = append(sources, &recall.Hot{IDs: ids})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

// BuildFilterNode 构建过滤节点。配置示例：
//
//	type: filter
//	config:
//	  blacklist: [570]
//	  exprs:
//	    - 'item.price > 60.0'
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &filter.FilterNode{}

	if ids := conv.SliceAnyToInt64(cfg["blacklist"]); len(ids) > 0 {
		node.Filters = append(node.Filters, filter.NewBlacklistFilter(ids, nil, ""))
	}

	if exprs, ok := cfg["exprs"].([]interface{}); ok {
		for _, e := range exprs {
			s, ok := e.(string)
			if !ok {
				continue
			}
			f, err := filter.NewExprFilter(s)
			if err != nil {
				return nil, fmt.Errorf("compile filter expr %q: %w", s, err)
			}
			node.Filters = append(node.Filters, f)
		}
	}

	return node, nil
}

// BuildPreferenceNode 构建偏好打分节点。无必填配置。
func BuildPreferenceNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rank.PreferenceNode{}, nil
}

// BuildSampleNode 构建加权采样节点。配置示例：
//
//	type: rerank.sample
//	config:
//	  count: 10
func BuildSampleNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SampleNode{
		Count: int(conv.ConfigGetInt64(cfg, "count", 0)),
	}, nil
}

// BuildDiversityNode 构建多样性去重节点。
func BuildDiversityNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{}, nil
}

// BuildTopNNode 构建 Top-N 截断节点。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}
