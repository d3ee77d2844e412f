package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.NotEmpty(t, Required("", "标题"))
	assert.NotEmpty(t, Required("   ", "标题"))
	assert.Empty(t, Required("hello", "标题"))
}

func TestLengthBounds(t *testing.T) {
	assert.NotEmpty(t, MinLength("abcd", 5, "标题"))
	assert.Empty(t, MinLength("abcde", 5, "标题"))
	assert.Empty(t, MaxLength("abcde", 5, "标题"))
	assert.NotEmpty(t, MaxLength("abcdef", 5, "标题"))
}

func TestNumericBounds(t *testing.T) {
	assert.NotEmpty(t, Min("99", 100, "金额"))
	assert.Empty(t, Min("100", 100, "金额"))
	assert.Empty(t, Max("100", 100, "金额"))
	assert.NotEmpty(t, Max("101", 100, "金额"))

	// 非数值不归上下限规则管
	assert.Empty(t, Min("abc", 100, "金额"))
	assert.Empty(t, Max("abc", 100, "金额"))
}

func TestNumber(t *testing.T) {
	assert.Empty(t, Number("123.45", "金额"))
	assert.NotEmpty(t, Number("abc", "金额"))
	assert.NotEmpty(t, Number("", "金额"))
	assert.NotEmpty(t, Number("NaN", "金额"))
	assert.NotEmpty(t, Number("Inf", "金额"))
}

func TestPositiveNumber(t *testing.T) {
	assert.Empty(t, PositiveNumber("0.01", "金额"))
	assert.NotEmpty(t, PositiveNumber("0", "金额"))
	assert.NotEmpty(t, PositiveNumber("-5", "金额"))
	assert.NotEmpty(t, PositiveNumber("abc", "金额"))
}

func TestDate(t *testing.T) {
	assert.Empty(t, Date("2030-06-15", "日期"))
	assert.NotEmpty(t, Date("not-a-date", "日期"))
	assert.NotEmpty(t, Date("2030-13-99", "日期"))
}

func TestFutureDateBoundary(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// 当天零点算今天，今天本身允许
	assert.Empty(t, FutureDate(today, "结束日期"))
	assert.Empty(t, FutureDate(tomorrow, "结束日期"))
	assert.NotEmpty(t, FutureDate(yesterday, "结束日期"))
}

func TestURL(t *testing.T) {
	assert.Empty(t, URL("https://example.com/image.png", "图片"))
	assert.NotEmpty(t, URL("not a url", "图片"))
	assert.NotEmpty(t, URL("/relative/path", "图片"))
}

func TestEmail(t *testing.T) {
	assert.Empty(t, Email("user@example.com", "邮箱"))
	assert.NotEmpty(t, Email("user@", "邮箱"))
	assert.NotEmpty(t, Email("user@example", "邮箱"))
	assert.NotEmpty(t, Email("user example.com", "邮箱"))
}
