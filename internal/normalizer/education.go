package normalizer

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/ontology"
	"cv-parser-go/internal/types"
)

// EducationNormalizer 教育经历归一化
// 院校是封闭词表：匹配不上的一律给 "Unknown" 哨兵值；
// 学位和专业是半开放词表，匹配不上时保留展开后的写法。
type EducationNormalizer struct {
	institutions *ontology.Mapping
	degrees      *ontology.Mapping
	fields       *ontology.Mapping
	thresholds   config.ThresholdConfig
	dates        *DateResolver
}

// UnknownInstitution 院校归一失败时的哨兵值
const UnknownInstitution = "Unknown"

// NewEducationNormalizer 构建教育归一化器
func NewEducationNormalizer(store *ontology.Store, thresholds config.ThresholdConfig, dates *DateResolver) *EducationNormalizer {
	return &EducationNormalizer{
		institutions: store.Institutions,
		degrees:      store.Degrees,
		fields:       store.Fields,
		thresholds:   thresholds,
		dates:        dates,
	}
}

// 学位缩写展开表，按声明顺序应用
var degreeSubs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\bm\.?b\.?a\b\.?`), "Master of Business Administration"},
	{regexp.MustCompile(`(?i)\bb\.?\s*sc?\b\.?`), "Bachelor of Science"},
	{regexp.MustCompile(`(?i)\bb\.?\s*a\b\.?`), "Bachelor of Arts"},
	{regexp.MustCompile(`(?i)\bm\.?\s*sc?\b\.?`), "Master of Science"},
	{regexp.MustCompile(`(?i)\bm\.?\s*a\b\.?`), "Master of Arts"},
	{regexp.MustCompile(`(?i)\bph\.?\s*d\b\.?`), "Doctor of Philosophy"},
	{regexp.MustCompile(`(?i)\bdphil\b\.?`), "Doctor of Philosophy"},
	{regexp.MustCompile(`(?i)\bmasters\b`), "Master"},
	{regexp.MustCompile(`(?i)\badmin\b\.?`), "Administration"},
}

var (
	degreeInRe       = regexp.MustCompile(`(?i)\bin\b`)
	trailingDegreeRe = regexp.MustCompile(`(?i)\s+degree\s*$`)

	// 院校名清洗：非常规字符、机构类型词，匹配时都是噪声
	instJunkRe    = regexp.MustCompile(`[^\w\s&.,-]`)
	instOrgWordRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|univ|coll|inst|sch)\b`)

	// 专业缩写
	fieldSubs = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`(?i)^cs$`), "Computer Science"},
		{regexp.MustCompile(`(?i)^ee$`), "Electrical Engineering"},
		{regexp.MustCompile(`(?i)^ce$`), "Computer Engineering"},
		{regexp.MustCompile(`(?i)^mis$`), "Management Information Systems"},
	}

	// camelCase 粘连拆分，"ComputerScience" -> "Computer Science"
	camelSplitRe = regexp.MustCompile(`([a-z])([A-Z])`)
)

// NormalizeInstitution 归一化院校名
// 空输入返回空串交由装配阶段处理；非空但解析失败给哨兵值。
func (n *EducationNormalizer) NormalizeInstitution(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if canon, ok := n.institutions.Canonical(s); ok {
		return canon
	}

	cleaned := instJunkRe.ReplaceAllString(s, "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = instOrgWordRe.ReplaceAllString(cleaned, "")
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = s
	}

	if canon, ok := matchCanonical(n.institutions, cleaned, n.thresholds.Institution); ok {
		return canon
	}
	// 原始写法再试一次，清洗可能洗掉了关键词
	if canon, ok := matchCanonical(n.institutions, s, n.thresholds.Institution); ok {
		return canon
	}
	return UnknownInstitution
}

// NormalizeDegree 归一化学位：缩写展开 -> 本体匹配 -> 保留展开结果
func (n *EducationNormalizer) NormalizeDegree(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	for _, sub := range degreeSubs {
		s = sub.re.ReplaceAllString(s, sub.repl)
	}
	s = degreeInRe.ReplaceAllString(s, "of")
	s = trailingDegreeRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if canon, ok := matchCanonical(n.degrees, s, n.thresholds.Degree); ok {
		return canon
	}
	return s
}

// NormalizeField 归一化专业
func (n *EducationNormalizer) NormalizeField(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	for _, sub := range fieldSubs {
		s = sub.re.ReplaceAllString(s, sub.repl)
	}
	s = camelSplitRe.ReplaceAllString(s, "$1 $2")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if canon, ok := matchCanonical(n.fields, s, n.thresholds.Field); ok {
		return canon
	}
	return s
}

// NormalizeEntries 批量归一化教育经历
// 院校和学位都解析不出任何东西的条目直接丢弃并告警。
func (n *EducationNormalizer) NormalizeEntries(raws []types.RawEducation) []types.Education {
	out := make([]types.Education, 0, len(raws))
	for _, raw := range raws {
		entry := types.Education{
			Institution:  n.NormalizeInstitution(raw.Institution),
			Degree:       n.NormalizeDegree(raw.Degree),
			FieldOfStudy: n.NormalizeField(raw.FieldOfStudy),
			GPA:          ParseGPA(raw.GPA),
			Description:  NormalizeDescription(raw.Description),
			Achievements: cleanList(raw.Achievements),
		}
		entry.StartDate = n.dates.NormalizeToString(raw.StartDate)
		entry.EndDate = n.dates.NormalizeToString(raw.EndDate)

		if entry.Institution == "" {
			if entry.Degree == "" && entry.FieldOfStudy == "" {
				logger.Warn().Msg("教育条目缺少院校和学位，整条丢弃")
				continue
			}
			entry.Institution = UnknownInstitution
		}
		out = append(out, entry)
	}
	return out
}

// cleanList 去掉列表项里的空白和项目符号，丢弃空项
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		cleaned := NormalizeDescription(item)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
