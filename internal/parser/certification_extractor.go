package parser

import (
	"regexp"
	"strings"
)

var certKeywordRe = regexp.MustCompile(`(?i)\b(certifications?|certificates?|certified|licenses?|licences?|credentials?)\b`)

// ExtractCertifications 把认证章节切分成认证条目
// 含认证关键词的行开启条目，后续普通行空格拼接进去，
// 空行或下一个关键词行收尾。
func ExtractCertifications(content string) []string {
	var out []string
	var cur string

	flush := func() {
		cur = strings.TrimSpace(cur)
		if cur != "" {
			out = append(out, cur)
		}
		cur = ""
	}

	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(bulletLineRe.ReplaceAllString(line, ""))
		if t == "" {
			flush()
			continue
		}
		if certKeywordRe.MatchString(t) {
			flush()
			cur = t
			continue
		}
		if cur != "" {
			cur += " " + t
		}
	}
	flush()
	return out
}
