package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/types"
)

const sampleResume = `John Smith
john@example.com

EDUCATION
MIT
BSc Computer Science
2018-2022 GPA: 3.8

EXPERIENCE
Software Engineer at Google
Jan 2020 - Present
• built services`

func TestClassifySampleResume(t *testing.T) {
	rs := config.DefaultSectionRuleSet()
	c := NewSectionClassifier(&rs)

	doc := BuildDocument(sampleResume)
	sections := c.Classify(doc)

	byName := map[string]types.Section{}
	for _, s := range sections {
		byName[s.Name] = s
	}

	edu, ok := byName["education"]
	require.True(t, ok, "应当识别出education章节")
	assert.Contains(t, edu.Content, "MIT")
	assert.Contains(t, edu.Content, "BSc Computer Science")
	// 标题行本身不进内容
	assert.NotContains(t, edu.Content, "EDUCATION")

	exp, ok := byName["experience"]
	require.True(t, ok, "应当识别出experience章节")
	assert.Contains(t, exp.Content, "Software Engineer at Google")
}

func TestClassifyDeterministic(t *testing.T) {
	rs := config.DefaultSectionRuleSet()
	c := NewSectionClassifier(&rs)
	doc := BuildDocument(sampleResume)

	first := c.Classify(doc)
	second := c.Classify(doc)
	assert.Equal(t, first, second)
}

func TestClassifyEmptyRules(t *testing.T) {
	c := NewSectionClassifier(&config.SectionRuleSet{
		ConfidenceThreshold: 0.5,
		MinHeadingSize:      10,
	})
	doc := BuildDocument("EDUCATION\nMIT")

	sections := c.Classify(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, types.DefaultSectionName, sections[0].Name)
	assert.Contains(t, sections[0].Content, "MIT")
	assert.Contains(t, sections[0].Content, "EDUCATION")
}

func TestClassifyThresholdBoundary(t *testing.T) {
	mkRules := func(threshold float64) *config.SectionRuleSet {
		return &config.SectionRuleSet{
			Sections: []config.SectionRule{
				{Name: "education", Patterns: []string{`education`, `academic`}},
			},
			ConfidenceThreshold: threshold,
			MinHeadingSize:      10,
		}
	}
	doc := BuildDocument("EDUCATION\nMIT")

	// 命中1/2刚好等于阈值0.5，接受
	sections := NewSectionClassifier(mkRules(0.5)).Classify(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, "education", sections[0].Name)

	// 阈值0.6时1/2不够，没有任何章节
	sections = NewSectionClassifier(mkRules(0.6)).Classify(doc)
	assert.Empty(t, sections)
}

func TestClassifyTieBreakDeclarationOrder(t *testing.T) {
	rs := &config.SectionRuleSet{
		Sections: []config.SectionRule{
			{Name: "summary", Patterns: []string{`background`}},
			{Name: "experience", Patterns: []string{`background`}},
		},
		ConfidenceThreshold: 0.5,
		MinHeadingSize:      10,
	}
	doc := BuildDocument("BACKGROUND\nsome text")

	sections := NewSectionClassifier(rs).Classify(doc)
	require.Len(t, sections, 1)
	// 同分取声明靠前的章节
	assert.Equal(t, "summary", sections[0].Name)
}

func TestClassifySmallUnitNeedsExplicitMarker(t *testing.T) {
	rs := &config.SectionRuleSet{
		Sections: []config.SectionRule{
			{Name: "skills", Patterns: []string{`skills`}},
		},
		ConfidenceThreshold: 0.5,
		MinHeadingSize:      20, // 所有块的字号都到不了
	}
	c := NewSectionClassifier(rs)

	// 冒号结尾的小字行仍可触发转移
	doc := &types.Document{Blocks: []types.Block{
		{Text: "Skills:", Type: types.BlockText, Font: types.FontInfo{Size: 9}},
		{Text: "Go, Python", Type: types.BlockText, Font: types.FontInfo{Size: 9}},
	}}
	sections := c.Classify(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, "skills", sections[0].Name)

	// 没有显式标题标记的小字行只能当内容
	doc = &types.Document{Blocks: []types.Block{
		{Text: "my skills are many", Type: types.BlockText, Font: types.FontInfo{Size: 9}},
	}}
	assert.Empty(t, c.Classify(doc))

	// 全大写同样算显式标记
	doc = &types.Document{Blocks: []types.Block{
		{Text: "SKILLS", Type: types.BlockText, Font: types.FontInfo{Size: 9}},
		{Text: "Go, Python", Type: types.BlockText, Font: types.FontInfo{Size: 9}},
	}}
	sections = c.Classify(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, "skills", sections[0].Name)
}

func TestClassifyBadPatternSkipped(t *testing.T) {
	rs := &config.SectionRuleSet{
		Sections: []config.SectionRule{
			{Name: "education", Patterns: []string{`[invalid`, `education`}},
		},
		ConfidenceThreshold: 0.5,
		MinHeadingSize:      10,
	}
	c := NewSectionClassifier(rs)

	doc := BuildDocument("EDUCATION\nMIT")
	sections := c.Classify(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, "education", sections[0].Name)
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument("EDUCATION\nMIT\nSkills:\nthis is a normal sentence of body text")
	require.Len(t, doc.Blocks, 4)

	assert.Equal(t, types.BlockHeading, doc.Blocks[0].Type)
	assert.Equal(t, float64(types.HeadingFontSize), doc.Blocks[0].Font.Size)
	// 全大写短行也是标题
	assert.Equal(t, types.BlockHeading, doc.Blocks[1].Type)
	// 冒号结尾的行是标题
	assert.Equal(t, types.BlockHeading, doc.Blocks[2].Type)
	assert.Equal(t, types.BlockText, doc.Blocks[3].Type)
}
