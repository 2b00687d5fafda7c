package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	bulletPrefixRe = regexp.MustCompile(`(?m)^[\s•\-*]+`)
	multiSpaceRe   = regexp.MustCompile(`\s+`)
	gpaValueRe     = regexp.MustCompile(`\b(\d\.\d{1,2})\b`)
	gpaScaleRe     = regexp.MustCompile(`(?i)out\s+of|on\s+a|scale`)
)

// NormalizeDescription 清理描述文本：去掉行首项目符号，
// 压平空白，首字母大写。
func NormalizeDescription(raw string) string {
	s := bulletPrefixRe.ReplaceAllString(raw, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ParseGPA 从文本中提取GPA数值
// 带有 "out of"、"scale" 这类换算说明的不提取，
// 没法确认是不是4分制，宁缺毋滥。
func ParseGPA(raw string) *float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if gpaScaleRe.MatchString(raw) {
		return nil
	}
	m := gpaValueRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
