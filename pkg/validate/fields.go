package validate

import (
	"encoding/json"

	"github.com/jonasbyc/buycycle-production-mcp/pkg/rules"
)

// isPresent 判断提交中是否存在字段的有效值
// nil 与纯空白字符串都视为缺失
func isPresent(fields map[string]any, f rules.Field) bool {
	value, ok := fields[f.String()]
	if !ok || value == nil {
		return false
	}
	if text, isText := value.(string); isText {
		return trimmedNonEmpty(text)
	}
	return true
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// asString 把提交值转成字符串，非字符串返回 false
func asString(value any) (string, bool) {
	text, ok := value.(string)
	return text, ok
}

// asNumber 把提交值转成数值
// JSON 解码出的数字是 float64，但直接构造的提交可能携带整型
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		num, err := v.Float64()
		return num, err == nil
	default:
		return 0, false
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// containsAny 判断提交值是否属于合法取值集合
// 字符串按相等比较，数值统一折算成 float64 再比较
func containsAny(valid []any, value any) bool {
	if text, ok := asString(value); ok {
		for _, v := range valid {
			if t, isText := v.(string); isText && t == text {
				return true
			}
		}
		return false
	}
	if num, ok := asNumber(value); ok {
		for _, v := range valid {
			if n, isNum := asNumber(v); isNum && n == num {
				return true
			}
		}
	}
	return false
}

func anyStrings(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func anyInts(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
