package parser

import (
	"regexp"
	"strings"
	"unicode"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/types"
)

// SectionClassifier 章节分类器
// 在文本单元流上跑状态机：状态是当前章节，命中规则的标题行触发转移，
// 其余行追加进当前章节。规则集启动时编译一次，之后只读，
// 可在多个goroutine间共享。
type SectionClassifier struct {
	rules          []compiledRule
	threshold      float64
	minHeadingSize float64
}

type compiledRule struct {
	name     string
	patterns []*regexp.Regexp
}

// 原始文本逐行模式下每行的名义字号
const rawLineFontSize = 12

// NewSectionClassifier 编译规则集构建分类器
// 编译失败的单条模式跳过并告警，不拖垮整个规则集。
func NewSectionClassifier(rs *config.SectionRuleSet) *SectionClassifier {
	c := &SectionClassifier{
		threshold:      0.5,
		minHeadingSize: 10,
	}
	if rs == nil {
		return c
	}
	c.threshold = rs.ConfidenceThreshold
	c.minHeadingSize = rs.MinHeadingSize

	for _, sec := range rs.Sections {
		cr := compiledRule{name: sec.Name}
		for _, p := range sec.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				logger.Warn().Err(err).Str("section", sec.Name).Str("pattern", p).Msg("章节规则编译失败，跳过该模式")
				continue
			}
			cr.patterns = append(cr.patterns, re)
		}
		if len(cr.patterns) > 0 {
			c.rules = append(c.rules, cr)
		}
	}
	return c
}

// textUnit 分类的最小单元：一个块或一行原始文本
type textUnit struct {
	text  string
	size  float64
	block *types.Block
}

// Classify 把文档切分成命名章节
// 没有可用规则时全部内容落进默认的content章节。
// 同一输入两次分类结果完全一致。
func (c *SectionClassifier) Classify(doc *types.Document) []types.Section {
	units := c.units(doc)

	if len(c.rules) == 0 {
		return c.fallbackSection(units)
	}

	var ordered []*types.Section
	byName := make(map[string]*types.Section)
	var current *types.Section

	for _, u := range units {
		trimmed := strings.TrimSpace(u.text)
		if trimmed == "" {
			continue
		}

		if c.headingEligible(trimmed, u.size) {
			if name, conf := c.bestSection(trimmed); conf >= c.threshold {
				sec, ok := byName[name]
				if !ok {
					sec = &types.Section{Name: name}
					if u.block != nil {
						sec.Position = u.block.Position
					}
					byName[name] = sec
					ordered = append(ordered, sec)
				}
				current = sec
				// 标题行本身是边界，不算内容
				continue
			}
		}

		if current == nil {
			// 第一个标题出现之前的内容没有归属，丢弃
			continue
		}
		if current.Content != "" {
			current.Content += "\n"
		}
		current.Content += trimmed
		if u.block != nil {
			current.Blocks = append(current.Blocks, *u.block)
		}
	}

	out := make([]types.Section, 0, len(ordered))
	for _, sec := range ordered {
		out = append(out, *sec)
	}
	return out
}

// units 优先使用块序列，没有块时退化为原始文本逐行模式
func (c *SectionClassifier) units(doc *types.Document) []textUnit {
	if len(doc.Blocks) > 0 {
		units := make([]textUnit, 0, len(doc.Blocks))
		for i := range doc.Blocks {
			b := &doc.Blocks[i]
			size := b.Font.Size
			if b.Type == types.BlockHeading {
				// 结构化来源已经标明是标题，字号信息直接拉满
				size = types.HeadingFontSize
			}
			units = append(units, textUnit{text: b.Text, size: size, block: b})
		}
		return units
	}

	lines := strings.Split(doc.RawText, "\n")
	units := make([]textUnit, 0, len(lines))
	for _, line := range lines {
		units = append(units, textUnit{text: line, size: rawLineFontSize})
	}
	return units
}

// headingEligible 判断单元是否有资格触发章节转移
// 字号不够的小字单元，只有以冒号结尾或全大写时才当标题看。
func (c *SectionClassifier) headingEligible(text string, size float64) bool {
	if size >= c.minHeadingSize {
		return true
	}
	if strings.HasSuffix(text, ":") {
		return true
	}
	return isAllUpper(text)
}

// bestSection 对单元打分：每个章节算命中模式占比，取最高者
// 同分时按规则声明顺序取先者。
func (c *SectionClassifier) bestSection(text string) (string, float64) {
	bestName := ""
	bestConf := -1.0
	for _, rule := range c.rules {
		matched := 0
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				matched++
			}
		}
		conf := float64(matched) / float64(len(rule.patterns))
		if conf > bestConf {
			bestConf = conf
			bestName = rule.name
		}
	}
	return bestName, bestConf
}

// fallbackSection 规则集为空时的兜底：所有内容进一个content桶
func (c *SectionClassifier) fallbackSection(units []textUnit) []types.Section {
	var lines []string
	sec := types.Section{Name: types.DefaultSectionName}
	for _, u := range units {
		trimmed := strings.TrimSpace(u.text)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		if u.block != nil {
			sec.Blocks = append(sec.Blocks, *u.block)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	sec.Content = strings.Join(lines, "\n")
	if len(sec.Blocks) > 0 {
		sec.Position = sec.Blocks[0].Position
	}
	return []types.Section{sec}
}

// isAllUpper 含字母且所有字母都是大写
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
