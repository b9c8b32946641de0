// Package conv 提供类型转换工具：配置取值（YAML/JSON 解析结果）与
// 容错的数值解析。数值字段解析失败时一律降级为 0，不中断请求。
package conv

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// SliceAnyToInt64 将 []any（JSON/YAML 解析结果）转为 []int64，
// 无法识别的元素被跳过。
func SliceAnyToInt64(v any) []int64 {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, e := range raw {
		switch val := e.(type) {
		case int:
			out = append(out, int64(val))
		case int64:
			out = append(out, val)
		case float64:
			out = append(out, int64(val))
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// ConfigGet 从 map[string]any 按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetInt64 从 config 取 int64。YAML/JSON 常得到 int 或 float64，
// 此处兼容并统一为 int64。
func ConfigGetInt64(m map[string]any, key string, defaultVal int64) int64 {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	default:
		return defaultVal
	}
}

// ConfigGetFloat64 从 config 取 float64，兼容整数形态。
func ConfigGetFloat64(m map[string]any, key string, defaultVal float64) float64 {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	f, ok := ToFloat64(v)
	if !ok {
		return defaultVal
	}
	return f
}

// LenientFloat 是容错的 float64：反序列化时接受 JSON 数字或数字字符串，
// 解析失败（以及负的无意义值之外的脏数据）降级为 0 而不报错。
// 外部目录的 price 字段形态不稳定（"19.99"、1999、""），用此类型承接。
type LenientFloat float64

func (f *LenientFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*f = LenientFloat(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = LenientFloat(parsed)
		}
	}
	return nil
}

// LenientInt 是容错的 int64，语义同 LenientFloat。
// 评价计数等字段解析失败时降级为 0。
type LenientInt int64

func (n *LenientInt) UnmarshalJSON(b []byte) error {
	*n = 0
	var num int64
	if err := json.Unmarshal(b, &num); err == nil {
		*n = LenientInt(num)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = LenientInt(int64(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			*n = LenientInt(parsed)
		}
	}
	return nil
}
