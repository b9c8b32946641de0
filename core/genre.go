package core

import "strings"

// NormalizeGenres 将任意来源的类型标签规范化为有序、去重、无空串的列表。
//
// 外部目录的 genre 字段形态不一：可能是逗号拼接的单个字符串
// （"Action, RPG"）、含有拼接串的单元素列表、或规范列表。打分按
// 单个类型逐一查权重，不拆分会导致静默欠匹配，因此所有进入
// 打分/反馈路径的类型标签都必须先经过这里。
func NormalizeGenres(genres ...string) []string {
	if len(genres) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		for _, part := range strings.Split(g, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

// GenresFromAny 从动态数据（JSON 解析结果等）提取类型标签并规范化。
// 支持 string、[]string、[]any；其它类型返回 nil。
func GenresFromAny(v any) []string {
	switch val := v.(type) {
	case string:
		return NormalizeGenres(val)
	case []string:
		return NormalizeGenres(val...)
	case []any:
		raw := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
		return NormalizeGenres(raw...)
	default:
		return nil
	}
}
