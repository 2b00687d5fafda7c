package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/types"
)

var (
	jobTitleRe = regexp.MustCompile(`(?i)\b(developer|engineer|manager|analyst|consultant|designer|architect|director|administrator|intern|specialist|scientist|lead|officer|president)\b`)
	atSplitRe  = regexp.MustCompile(`(?i)\s+(?:at|@)\s+`)

	techMarkerRe = regexp.MustCompile(`(?i)^(?:technologies|tech\s*stack|built\s+with|tools)[:\s]+(.*)$`)
	techSplitRe  = regexp.MustCompile(`[,|/;]+`)
)

// ExtractExperienceEntries 把工作章节的原始文本切分成条目
// 含职位关键词的短行开启新条目，"Software Engineer at Google"
// 这种写法顺带拆出公司；公司单独占一行时从相邻行回填。
func ExtractExperienceEntries(content string) []types.RawExperience {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}

	var entries []types.RawExperience
	var cur *types.RawExperience
	pending := ""

	for i, t := range lines {
		if isTitleLine(t) {
			if cur != nil {
				entries = append(entries, *cur)
			}
			cur = &types.RawExperience{}
			if parts := atSplitRe.Split(t, 2); len(parts) == 2 {
				cur.Position = strings.TrimSpace(parts[0])
				cur.Company = strings.TrimSpace(parts[1])
			} else {
				cur.Position = t
			}
			if cur.Company == "" {
				cur.Company = pending
			}
			pending = ""
			continue
		}

		if cur == nil {
			pending = t
			continue
		}

		if m := dateRangeRe.FindStringSubmatch(t); m != nil {
			if cur.StartDate == "" {
				cur.StartDate = m[1]
				cur.EndDate = m[2]
			}
			continue
		}

		if m := techMarkerRe.FindStringSubmatch(t); m != nil {
			for _, tech := range techSplitRe.Split(m[1], -1) {
				tech = strings.TrimSpace(tech)
				if tech != "" {
					cur.Technologies = append(cur.Technologies, tech)
				}
			}
			continue
		}

		if bulletLineRe.MatchString(t) {
			if cur.Description != "" {
				cur.Description += "\n"
			}
			cur.Description += bulletLineRe.ReplaceAllString(t, "")
			continue
		}

		// 紧跟新职位行之前的普通短行是下一条的公司，不并进当前描述
		if i+1 < len(lines) && isTitleLine(lines[i+1]) && companyCandidate(t) {
			pending = t
			continue
		}

		if cur.Company == "" {
			cur.Company = t
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

// isTitleLine 职位行判定：短、非项目符号、含职位关键词
func isTitleLine(t string) bool {
	if len(t) > 80 {
		return false
	}
	if bulletLineRe.MatchString(t) {
		return false
	}
	return jobTitleRe.MatchString(t)
}

// companyCandidate 形态上像公司名的行：短、大写开头、不是句子
func companyCandidate(t string) bool {
	if len(t) > 60 || strings.HasSuffix(t, ".") {
		return false
	}
	if len(strings.Fields(t)) > 6 {
		return false
	}
	r := []rune(t)
	return len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z'
}
