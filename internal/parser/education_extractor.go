package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/types"
)

var (
	// 学位行：常见学位词或缩写开头，余下部分当专业
	degreeLineRe = regexp.MustCompile(`(?i)^\s*((?:b\.?\s*sc?|b\.?\s*a|m\.?\s*sc?|m\.?\s*a|mba|ph\.?\s*d|bachelor(?:'?s)?(?:\s+of\s+[a-z]+)?|master(?:'?s)?(?:\s+of\s+[a-z]+)?|doctor(?:\s+of\s+[a-z]+)?|associate(?:'?s)?(?:\s+of\s+[a-z]+)?|diploma)\b\.?)\s*(?:in\s+|of\s+|,\s*)?(.*)$`)

	// 时间区间："Jan 2020 - Present"、"2018-2022" 等
	dateRangeRe = regexp.MustCompile(`(?i)((?:[a-z]{3,9}\.?\s+)?\d{4}|present|current)\s*(?:-|–|—|to)\s*((?:[a-z]{3,9}\.?\s+)?\d{4}|present|current|now)`)

	gpaRe        = regexp.MustCompile(`(?i)gpa[:\s]*(\d\.\d{1,2})`)
	bulletLineRe = regexp.MustCompile(`^\s*[•\-*]\s*`)
)

// ExtractEducationEntries 把教育章节的原始文本切分成条目
// 学位行开启新条目；学位行之前挂起的行回填为院校名，
// 处理 "MIT\nBSc Computer Science" 这种院校在前的常见排版。
// 空行不关闭条目，只有新的学位行才会。
func ExtractEducationEntries(content string) []types.RawEducation {
	var entries []types.RawEducation
	var cur *types.RawEducation
	pending := ""

	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}

		if m := degreeLineRe.FindStringSubmatch(t); m != nil && !bulletLineRe.MatchString(line) {
			if cur != nil {
				entries = append(entries, *cur)
			}
			cur = &types.RawEducation{
				Degree:       strings.TrimSpace(strings.Trim(m[1], " .,")),
				FieldOfStudy: strings.TrimSpace(m[2]),
			}
			if pending != "" {
				cur.Institution = pending
				pending = ""
			}
			continue
		}

		if cur == nil {
			// 学位行还没出现，这行多半是院校名，先挂起
			pending = t
			continue
		}

		if m := dateRangeRe.FindStringSubmatch(t); m != nil {
			if cur.StartDate == "" {
				cur.StartDate = m[1]
				cur.EndDate = m[2]
			}
			if g := gpaRe.FindStringSubmatch(t); g != nil && cur.GPA == "" {
				cur.GPA = g[1]
			}
			continue
		}

		if g := gpaRe.FindStringSubmatch(t); g != nil && cur.GPA == "" {
			cur.GPA = g[1]
			continue
		}

		if bulletLineRe.MatchString(t) {
			cur.Achievements = append(cur.Achievements, bulletLineRe.ReplaceAllString(t, ""))
			continue
		}

		if cur.Institution == "" {
			cur.Institution = t
			continue
		}

		if cur.Description != "" {
			cur.Description += "\n"
		}
		cur.Description += t
	}

	if cur != nil {
		entries = append(entries, *cur)
	}
	return entries
}
