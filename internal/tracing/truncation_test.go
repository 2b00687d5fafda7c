package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"a":                "*",
		"ab":               "a*",
		"abc":              "a*c",
		"john@example.com": "jo************om",
	}
	for input, want := range cases {
		assert.Equal(t, want, MaskPII(input), "input: %q", input)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))

	long := strings.Repeat("x", 50)
	got := TruncateString(long, 23)
	assert.Len(t, got, 23)
	assert.Contains(t, got, "...")

	// 极短上限时直接硬截断
	assert.Equal(t, "xx", TruncateString(long, 2))
}

func TestSafeAttributeValue(t *testing.T) {
	// 敏感字段名走掩码
	got := SafeAttributeValue("contact.email", "john@example.com", DefaultMaxLength)
	assert.Equal(t, "jo************om", got)
	assert.NotContains(t, got, "john")

	// 普通字段只做长度截断
	long := strings.Repeat("y", 300)
	got = SafeAttributeValue("summary", long, DefaultMaxLength)
	assert.LessOrEqual(t, len(got), DefaultMaxLength)
}

func TestSafeDocumentContent(t *testing.T) {
	doc := strings.Repeat("简历内容 ", 100)
	got := SafeDocumentContent(doc)
	assert.LessOrEqual(t, len([]rune(got)), MaxDocumentLength)
}
