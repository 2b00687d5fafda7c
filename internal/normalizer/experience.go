package normalizer

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/ontology"
	"cv-parser-go/internal/types"
)

// ExperienceNormalizer 工作经历归一化
type ExperienceNormalizer struct {
	companies  *ontology.Mapping
	titles     *ontology.Mapping
	thresholds config.ThresholdConfig
	dates      *DateResolver
	skills     *SkillNormalizer // 条目里的技术栈复用技能归一化
}

// NewExperienceNormalizer 构建工作经历归一化器
func NewExperienceNormalizer(store *ontology.Store, thresholds config.ThresholdConfig, dates *DateResolver, skills *SkillNormalizer) *ExperienceNormalizer {
	return &ExperienceNormalizer{
		companies:  store.Companies,
		titles:     store.Titles,
		thresholds: thresholds,
		dates:      dates,
		skills:     skills,
	}
}

var (
	// 公司名后缀，法律实体类型词对识别公司没有信息量
	companySuffixRe = regexp.MustCompile(`(?i)[\s,]+(inc|incorporated|corp|corporation|co|company|ltd|limited|llc|group)\.?\s*$`)

	// 职位缩写展开表
	titleSubs = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`(?i)\bsr\b\.?`), "Senior"},
		{regexp.MustCompile(`(?i)\bjr\b\.?`), "Junior"},
		{regexp.MustCompile(`(?i)\bmgr\b\.?`), "Manager"},
		{regexp.MustCompile(`(?i)\bdir\b\.?`), "Director"},
		{regexp.MustCompile(`(?i)\bvp\b\.?`), "Vice President"},
		{regexp.MustCompile(`(?i)\bswe\b`), "Software Engineer"},
		{regexp.MustCompile(`(?i)\bsde\b`), "Software Development Engineer"},
		{regexp.MustCompile(`(?i)\bpm\b`), "Project Manager"},
	}
)

// NormalizeCompany 归一化公司名
// 匹配不上的保留原始写法不动：公司是开放词表，
// 没见过不代表写错了。
func (n *ExperienceNormalizer) NormalizeCompany(raw string) string {
	original := strings.TrimSpace(raw)
	if original == "" {
		return ""
	}

	if canon, ok := n.companies.Canonical(original); ok {
		return canon
	}

	cleaned := companySuffixRe.ReplaceAllString(original, "")
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(strings.Trim(cleaned, " .,"))
	if cleaned == "" {
		cleaned = original
	}

	if canon, ok := matchCanonical(n.companies, cleaned, n.thresholds.Company); ok {
		return canon
	}
	return original
}

// NormalizeTitle 归一化职位：缩写展开 -> 本体匹配 -> 保留展开结果
func (n *ExperienceNormalizer) NormalizeTitle(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	for _, sub := range titleSubs {
		s = sub.re.ReplaceAllString(s, sub.repl)
	}
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if canon, ok := matchCanonical(n.titles, s, n.thresholds.Title); ok {
		return canon
	}
	return s
}

// NormalizeEntries 批量归一化工作经历
// 公司和职位全空的条目丢弃并告警。duration_months由装配阶段统一计算。
func (n *ExperienceNormalizer) NormalizeEntries(raws []types.RawExperience) []types.Experience {
	out := make([]types.Experience, 0, len(raws))
	for _, raw := range raws {
		entry := types.Experience{
			Company:      n.NormalizeCompany(raw.Company),
			Position:     n.NormalizeTitle(raw.Position),
			Description:  NormalizeDescription(raw.Description),
			Technologies: n.skills.NormalizeList(raw.Technologies),
		}
		entry.StartDate = n.dates.NormalizeToString(raw.StartDate)
		entry.EndDate = n.dates.NormalizeToString(raw.EndDate)

		if entry.Company == "" && entry.Position == "" {
			logger.Warn().Msg("工作条目缺少公司和职位，整条丢弃")
			continue
		}
		out = append(out, entry)
	}
	return out
}
