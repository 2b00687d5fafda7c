package normalizer

import (
	"regexp"
	"sort"
	"strings"

	"cv-parser-go/internal/ontology"
)

// SkillNormalizer 技能归一化
// 技能是开放词表：本体里查不到的词清洗后原样保留，不丢弃。
type SkillNormalizer struct {
	mapping   *ontology.Mapping
	threshold int
	stopWords map[string]struct{}
}

// NewSkillNormalizer 构建技能归一化器
func NewSkillNormalizer(m *ontology.Mapping, threshold int, stopWords []string) *SkillNormalizer {
	sw := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		sw[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &SkillNormalizer{mapping: m, threshold: threshold, stopWords: sw}
}

var (
	labelPrefixRe = regexp.MustCompile(`^[a-zA-Z\s]+:\s*`)
	parenRe       = regexp.MustCompile(`\(([^)]*)\)`)
	numericRe     = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Clean 清洗单个技能词
// 去掉 "Languages: " 这类分类标签前缀；括号内容单独拆成子技能返回，
// "Python (Django, Flask)" 拆出 Django 和 Flask。
func (n *SkillNormalizer) Clean(raw string) (main string, subs []string) {
	s := strings.TrimSpace(raw)
	s = labelPrefixRe.ReplaceAllString(s, "")

	for _, m := range parenRe.FindAllStringSubmatch(s, -1) {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				subs = append(subs, part)
			}
		}
	}
	s = parenRe.ReplaceAllString(s, "")

	s = strings.Trim(s, " \t.,;-•")
	return s, subs
}

// Normalize 单个技能词归一化：清洗 -> 精确 -> 模糊 -> 原样保留
func (n *SkillNormalizer) Normalize(raw string) string {
	cleaned, _ := n.Clean(raw)
	if cleaned == "" {
		return ""
	}
	if canon, ok := matchCanonical(n.mapping, cleaned, n.threshold); ok {
		return canon
	}
	return cleaned
}

// NormalizeList 归一化一组技能词并去重
// 过滤停用词、单字符和纯数字；输出按字典序排序，
// 结果与输入顺序无关，方便对比和测试。
func (n *SkillNormalizer) NormalizeList(terms []string) []string {
	seen := make(map[string]struct{})
	for _, term := range terms {
		cleaned, subs := n.Clean(term)
		for _, candidate := range append([]string{cleaned}, subs...) {
			if !n.keep(candidate) {
				continue
			}
			normalized := candidate
			if canon, ok := matchCanonical(n.mapping, candidate, n.threshold); ok {
				normalized = canon
			}
			if normalized != "" {
				seen[normalized] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (n *SkillNormalizer) keep(s string) bool {
	if len(s) <= 1 {
		return false
	}
	if numericRe.MatchString(s) {
		return false
	}
	if _, isStop := n.stopWords[strings.ToLower(s)]; isStop {
		return false
	}
	return true
}
