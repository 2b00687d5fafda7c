package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)

	require.Len(t, cfg.Parser.RuleSets, 1)
	rs := cfg.Parser.RuleSets[0]
	assert.Equal(t, 0.5, rs.ConfidenceThreshold)
	assert.Equal(t, float64(10), rs.MinHeadingSize)
	assert.NotEmpty(t, rs.Sections)

	// 默认阈值
	assert.Equal(t, 90, cfg.Normalizer.Thresholds.Skill)
	assert.Equal(t, 85, cfg.Normalizer.Thresholds.Institution)
	assert.Equal(t, 85, cfg.Normalizer.Thresholds.Company)
	assert.Equal(t, 90, cfg.Normalizer.Thresholds.Title)
}

func TestDefaultSectionRuleSetOrder(t *testing.T) {
	rs := DefaultSectionRuleSet()
	var names []string
	for _, s := range rs.Sections {
		names = append(names, s.Name)
	}
	// 声明顺序即平分时的优先顺序
	assert.Equal(t, []string{"contact", "summary", "skills", "education", "experience", "projects", "certifications"}, names)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
  api_key: "secret"
logger:
  level: debug
  format: pretty
normalizer:
  ontology_dir: /data/ontologies
  thresholds:
    skill: 95
parser:
  rule_sets:
    - version: "2.0"
      document_type: resume_en
      confidence_threshold: 0.6
      sections:
        - name: education
          patterns: ["education"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/data/ontologies", cfg.Normalizer.OntologyDir)
	assert.Equal(t, 95, cfg.Normalizer.Thresholds.Skill)
	// 未覆盖的阈值走默认值
	assert.Equal(t, 85, cfg.Normalizer.Thresholds.Degree)

	require.Len(t, cfg.Parser.RuleSets, 1)
	assert.Equal(t, "2.0", cfg.Parser.RuleSets[0].Version)
	assert.Equal(t, 0.6, cfg.Parser.RuleSets[0].ConfidenceThreshold)
	assert.Equal(t, float64(10), cfg.Parser.RuleSets[0].MinHeadingSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadSectionRulesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
rule_sets:
  - version: "1.1"
    document_type: resume_de
    sections:
      - name: education
        patterns: ["ausbildung", "bildung"]
      - name: experience
        patterns: ["berufserfahrung", "erfahrung"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sets, err := LoadSectionRules(path)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "resume_de", sets[0].DocumentType)
	require.Len(t, sets[0].Sections, 2)
	assert.Equal(t, []string{"ausbildung", "bildung"}, sets[0].Sections[0].Patterns)
}

func TestRuleSetFor(t *testing.T) {
	p := ParserConfig{RuleSets: []SectionRuleSet{
		{DocumentType: "resume_en", Version: "a"},
		{DocumentType: "resume_de", Version: "b"},
	}}

	assert.Equal(t, "b", p.RuleSetFor("resume_de").Version)
	// 未知类型退回第一套
	assert.Equal(t, "a", p.RuleSetFor("cv_fr").Version)

	empty := ParserConfig{}
	assert.Nil(t, empty.RuleSetFor("resume_en"))
}

func TestOntologyPath(t *testing.T) {
	n := NormalizerConfig{OntologyDir: "/data/ont"}
	assert.Equal(t, filepath.Join("/data/ont", "skills.json"), n.OntologyPath("skills"))
	assert.Equal(t, filepath.Join("/data/ont", "degrees.json"), n.OntologyPath("degrees.json"))

	empty := NormalizerConfig{}
	assert.Equal(t, "", empty.OntologyPath("skills"))
}
