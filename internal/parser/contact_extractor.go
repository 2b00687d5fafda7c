package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/types"
)

var (
	nameLineRe = regexp.MustCompile(`^[A-Z][a-zA-Z\s.'-]+$`)
	emailRe    = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/[A-Za-z0-9_-]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9_-]+`)

	skillSplitRe = regexp.MustCompile(`[\n,;•/]+`)
	sentenceEnd  = ". "
)

// 摘要超长时的截断上限
const summaryMaxLen = 500

// ExtractContact 从联系方式章节提取联系信息
// 纯字母的首行当姓名，其余字段靠各自的正则全文匹配。
func ExtractContact(content string) types.RawContact {
	c := types.RawContact{}

	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if nameLineRe.MatchString(t) && !strings.Contains(t, "@") {
			c.Name = t
		}
		break
	}

	if m := emailRe.FindString(content); m != "" {
		c.Email = m
	}
	if m := linkedinRe.FindString(content); m != "" {
		c.LinkedIn = m
	}
	if m := githubRe.FindString(content); m != "" {
		c.GitHub = m
	}
	// 先摘掉URL再找电话，免得把URL里的数字串当号码
	scrubbed := linkedinRe.ReplaceAllString(content, "")
	scrubbed = githubRe.ReplaceAllString(scrubbed, "")
	scrubbed = emailRe.ReplaceAllString(scrubbed, "")
	if m := phoneRe.FindString(scrubbed); m != "" {
		c.Phone = strings.TrimSpace(m)
	}

	return c
}

// ExtractSummary 提取摘要：压平空白，超长时在句子边界截断
func ExtractSummary(content string) string {
	s := strings.Join(strings.Fields(content), " ")
	if len(s) <= summaryMaxLen {
		return s
	}
	cut := strings.LastIndex(s[:summaryMaxLen], sentenceEnd)
	if cut > 0 {
		return s[:cut+1]
	}
	return strings.TrimSpace(s[:summaryMaxLen])
}

// ExtractSkills 把技能章节拆成技能词列表
// 只负责切分，过滤和归一化交给下游
func ExtractSkills(content string) []string {
	var out []string
	for _, part := range skillSplitRe.Split(content, -1) {
		part = strings.Trim(part, " \t*-")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
