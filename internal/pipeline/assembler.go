package pipeline

import (
	"time"

	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/normalizer"
	"cv-parser-go/internal/types"
)

// Assembler 把各章节归一化结果装配成最终简历
// 纯组合逻辑：补默认值、算派生字段、拦下违反约束的条目。
type Assembler struct{}

// NewAssembler 构建装配器
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble 组合成完整简历
// 字符串字段缺省为空串、列表字段缺省为空列表，输出里不出现null。
// 违反必填约束的条目丢弃并告警，不会让整份文档失败。
func (a *Assembler) Assemble(
	contact types.Contact,
	summary string,
	skills []string,
	education []types.Education,
	experience []types.Experience,
	projects []types.Project,
	certifications []string,
) *types.Resume {
	r := types.NewResume()
	r.Contact = contact
	r.Summary = summary

	if skills != nil {
		r.Skills = skills
	}
	for _, e := range education {
		if e.Achievements == nil {
			e.Achievements = []string{}
		}
		r.Education = append(r.Education, e)
	}
	for _, e := range experience {
		if e.Technologies == nil {
			e.Technologies = []string{}
		}
		e.DurationMonths = durationFromDates(e.StartDate, e.EndDate)
		r.Experience = append(r.Experience, e)
	}
	for _, p := range projects {
		if p.Name == "" {
			logger.Warn().Msg("项目条目缺少名称，整条丢弃")
			continue
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		r.Projects = append(r.Projects, p)
	}
	if certifications != nil {
		r.Certifications = certifications
	}
	return r
}

// durationFromDates 由起止日期字符串计算在职月数
// 任一端缺失时为0
func durationFromDates(start, end *string) int {
	if start == nil || end == nil {
		return 0
	}
	s, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("2006-01-02", *end)
	if err != nil {
		return 0
	}
	return normalizer.DurationMonths(s, e)
}
