package parser

import (
	"regexp"
	"strings"
	"unicode"

	"cv-parser-go/internal/types"
)

var (
	numberedProjectRe = regexp.MustCompile(`^\d+[.)]\s+`)
	// 没有标点收尾的Title Case短行也当项目名
	titledProjectRe = regexp.MustCompile(`^[A-Z][\w\s&'-]{0,59}$`)

	// Title Case判定中允许小写的连接词
	titleConnectorWords = map[string]bool{
		"a": true, "an": true, "and": true, "for": true, "in": true,
		"of": true, "on": true, "the": true, "to": true, "with": true,
	}
)

// ExtractProjectEntries 把项目章节的原始文本切分成条目
// 冒号/连字符结尾的行、编号行或Title Case短行开启新项目，
// 后续行累积为描述，技术栈标记行解析成技术列表。
func ExtractProjectEntries(content string) []types.RawProject {
	var entries []types.RawProject
	var cur *types.RawProject

	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}

		if m := techMarkerRe.FindStringSubmatch(t); m != nil && cur != nil {
			for _, tech := range techSplitRe.Split(m[1], -1) {
				tech = strings.TrimSpace(tech)
				if tech != "" {
					cur.Technologies = append(cur.Technologies, tech)
				}
			}
			continue
		}

		if name, ok := projectName(t); ok {
			if cur != nil {
				entries = append(entries, *cur)
			}
			cur = &types.RawProject{Name: name}
			continue
		}

		if cur == nil {
			continue
		}
		desc := bulletLineRe.ReplaceAllString(t, "")
		if cur.Description != "" {
			cur.Description += "\n"
		}
		cur.Description += desc
	}

	if cur != nil {
		entries = append(entries, *cur)
	}
	return entries
}

// projectName 判断一行是否开启新项目，是则返回去掉装饰后的项目名
func projectName(t string) (string, bool) {
	if bulletLineRe.MatchString(t) {
		return "", false
	}
	switch {
	case strings.HasSuffix(t, ":"), strings.HasSuffix(t, "-"):
		return strings.TrimSpace(strings.TrimRight(t, ":-")), true
	case numberedProjectRe.MatchString(t):
		return strings.TrimSpace(numberedProjectRe.ReplaceAllString(t, "")), true
	case titledProjectRe.MatchString(t) && titleCased(t):
		return t, true
	}
	return "", false
}

// titleCased 判断短行是否全词首字母大写
// 描述行经常以大写动词开头("Built a warehouse inventory system")，
// 只看首词会把描述切成一堆假项目，所以要求除连接词外每个词都大写。
func titleCased(t string) bool {
	words := strings.Fields(t)
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	for i, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && titleConnectorWords[strings.ToLower(w)] {
			continue
		}
		return false
	}
	return true
}
