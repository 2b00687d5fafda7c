package pipeline

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/constants"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/normalizer"
	"cv-parser-go/internal/ontology"
	"cv-parser-go/internal/parser"
	"cv-parser-go/internal/tracing"
	"cv-parser-go/internal/types"
)

// Pipeline 文档结构化流水线
// 规则集和本体在构建时加载完毕，之后全程只读，
// 同一个实例可以在任意多个goroutine里并发跑不同文档。
type Pipeline struct {
	classifier *parser.SectionClassifier
	dates      *normalizer.DateResolver
	skills     *normalizer.SkillNormalizer
	education  *normalizer.EducationNormalizer
	experience *normalizer.ExperienceNormalizer
	assembler  *Assembler
	tracer     trace.Tracer
}

// New 构建流水线
// 单个规则或本体文件坏了只降级，规则和本体全都不可用才报错：
// 那种状态下流水线什么都做不了，没必要装作能启动。
func New(cfg *config.Config) (*Pipeline, error) {
	store := ontology.NewStore(cfg.Normalizer)
	ruleSet := cfg.Parser.RuleSetFor("")
	classifier := parser.NewSectionClassifier(ruleSet)

	noRules := ruleSet == nil || len(ruleSet.Sections) == 0
	if noRules && store.Empty() {
		return nil, ErrNoUsableConfig
	}

	dates := normalizer.NewDateResolver()
	skills := normalizer.NewSkillNormalizer(store.Skills, cfg.Normalizer.Thresholds.Skill, cfg.Normalizer.StopWords)

	return &Pipeline{
		classifier: classifier,
		dates:      dates,
		skills:     skills,
		education:  normalizer.NewEducationNormalizer(store, cfg.Normalizer.Thresholds, dates),
		experience: normalizer.NewExperienceNormalizer(store, cfg.Normalizer.Thresholds, dates, skills),
		assembler:  NewAssembler(),
		tracer:     otel.Tracer("cv-parser/pipeline"),
	}, nil
}

// ProcessText 纯文本入口：先推断块结构再走标准流程
func (p *Pipeline) ProcessText(ctx context.Context, rawText string) *types.Resume {
	return p.Process(ctx, parser.BuildDocument(rawText))
}

// Process 处理单个文档
// 永不返回错误：完全无法分类的文档得到一份各集合皆空的简历。
func (p *Pipeline) Process(ctx context.Context, doc *types.Document) *types.Resume {
	ctx, span := p.tracer.Start(ctx, "pipeline.Process")
	defer span.End()

	// 简历全文是个人信息，span上只放截断后的预览
	span.SetAttributes(attribute.String("document.preview", tracing.SafeDocumentContent(doc.RawText)))

	sections := p.classifier.Classify(doc)
	span.SetAttributes(attribute.Int("sections.count", len(sections)))

	var (
		contact        types.Contact
		summary        string
		skills         []string
		education      []types.Education
		experience     []types.Experience
		projects       []types.Project
		certifications []string
	)

	for _, sec := range sections {
		switch sec.Name {
		case constants.SectionContact:
			raw := parser.ExtractContact(sec.Content)
			contact = types.Contact{
				Name:     raw.Name,
				Phone:    raw.Phone,
				Email:    raw.Email,
				LinkedIn: raw.LinkedIn,
				GitHub:   raw.GitHub,
			}
		case constants.SectionSummary:
			summary = parser.ExtractSummary(sec.Content)
		case constants.SectionSkills:
			skills = p.skills.NormalizeList(parser.ExtractSkills(sec.Content))
		case constants.SectionEducation:
			education = p.education.NormalizeEntries(parser.ExtractEducationEntries(sec.Content))
		case constants.SectionExperience:
			experience = p.experience.NormalizeEntries(parser.ExtractExperienceEntries(sec.Content))
		case constants.SectionProjects:
			projects = p.normalizeProjects(parser.ExtractProjectEntries(sec.Content))
		case constants.SectionCertifications:
			certifications = parser.ExtractCertifications(sec.Content)
		default:
			logger.Debug().Str("section", sec.Name).Msg("没有对应抽取器的章节，跳过")
		}
	}

	// 联系方式没单列章节时从文档开头兜底提取
	if contact == (types.Contact{}) && doc.RawText != "" {
		raw := parser.ExtractContact(head(doc.RawText, 10))
		contact = types.Contact{
			Name:     raw.Name,
			Phone:    raw.Phone,
			Email:    raw.Email,
			LinkedIn: raw.LinkedIn,
			GitHub:   raw.GitHub,
		}
	}

	if contact.Email != "" {
		span.SetAttributes(attribute.String("contact.email", tracing.SafeAttributeValue("contact.email", contact.Email, tracing.DefaultMaxLength)))
	}

	return p.assembler.Assemble(contact, summary, skills, education, experience, projects, certifications)
}

// normalizeProjects 项目条目归一化：描述清理 + 技术栈走技能归一化
func (p *Pipeline) normalizeProjects(raws []types.RawProject) []types.Project {
	out := make([]types.Project, 0, len(raws))
	for _, raw := range raws {
		out = append(out, types.Project{
			Name:         strings.TrimSpace(raw.Name),
			Description:  normalizer.NormalizeDescription(raw.Description),
			Technologies: p.skills.NormalizeList(raw.Technologies),
		})
	}
	return out
}

// head 取文本前n行
func head(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
