package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// 原子校验规则：入参为表单原始值，返回错误消息，空串表示通过。
// 规则都是纯函数，单个字段内按顺序短路（第一条失败即为该字段的错误）。

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 日期支持的文本格式
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Required 必填
func Required(value, label string) string {
	if strings.TrimSpace(value) == "" {
		return label + "不能为空"
	}
	return ""
}

// MinLength 最小长度（含）
func MinLength(value string, n int, label string) string {
	if len([]rune(value)) < n {
		return fmt.Sprintf("%s长度不能少于%d个字符", label, n)
	}
	return ""
}

// MaxLength 最大长度（含）
func MaxLength(value string, n int, label string) string {
	if len([]rune(value)) > n {
		return fmt.Sprintf("%s长度不能超过%d个字符", label, n)
	}
	return ""
}

// Min 数值下限，非数值不在此规则内报错
func Min(value string, n float64, label string) string {
	v, ok := parseNumber(value)
	if !ok {
		return ""
	}
	if v < n {
		return fmt.Sprintf("%s不能小于%v", label, n)
	}
	return ""
}

// Max 数值上限，非数值不在此规则内报错
func Max(value string, n float64, label string) string {
	v, ok := parseNumber(value)
	if !ok {
		return ""
	}
	if v > n {
		return fmt.Sprintf("%s不能大于%v", label, n)
	}
	return ""
}

// Number 必须是有限数值
func Number(value, label string) string {
	if _, ok := parseNumber(value); !ok {
		return label + "必须是数字"
	}
	return ""
}

// PositiveNumber 必须是大于0的数值
func PositiveNumber(value, label string) string {
	v, ok := parseNumber(value)
	if !ok || v <= 0 {
		return label + "必须大于0"
	}
	return ""
}

// Date 必须是可解析的日期
func Date(value, label string) string {
	if _, ok := ParseDate(value); !ok {
		return label + "不是有效的日期"
	}
	return ""
}

// FutureDate 日期不能早于今天（当天零点，今天本身允许）
func FutureDate(value, label string) string {
	t, ok := ParseDate(value)
	if !ok {
		return label + "不是有效的日期"
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.Before(today) {
		return label + "不能早于今天"
	}
	return ""
}

// URL 必须是格式合法的绝对地址
func URL(value, label string) string {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return label + "不是有效的链接"
	}
	return ""
}

// Email 必须符合 local@domain.tld 形式
func Email(value, label string) string {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return label + "格式不正确"
	}
	return ""
}

// ParseDate 解析日期文本
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber 解析有限浮点数
func parseNumber(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// firstOf 返回第一条非空错误消息
func firstOf(msgs ...string) string {
	for _, msg := range msgs {
		if msg != "" {
			return msg
		}
	}
	return ""
}
