package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/config"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"institutions.json": `{"Massachusetts Institute of Technology": ["MIT", "M.I.T."]}`,
		"skills.json":       `{"Python": ["py", "python3"], "JavaScript": ["js"]}`,
		"companies.json":    `{"Google": ["Google Inc", "Alphabet"]}`,
		"titles.json":       `{"Software Engineer": ["Software Developer", "Programmer"]}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Normalizer.OntologyDir = dir

	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

func TestPipelineEducationEndToEnd(t *testing.T) {
	p := testPipeline(t)

	resume := p.ProcessText(context.Background(), "EDUCATION\nMIT\nBSc Computer Science\n2018-2022 GPA: 3.8")
	require.NotNil(t, resume)
	require.Len(t, resume.Education, 1)

	e := resume.Education[0]
	assert.Equal(t, "Massachusetts Institute of Technology", e.Institution)
	assert.Equal(t, "Bachelor of Science", e.Degree)
	assert.Equal(t, "Computer Science", e.FieldOfStudy)
	require.NotNil(t, e.StartDate)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, "2018-01-01", *e.StartDate)
	assert.Equal(t, "2022-01-01", *e.EndDate)
	require.NotNil(t, e.GPA)
	assert.InDelta(t, 3.8, *e.GPA, 0.001)
}

func TestPipelineFullResume(t *testing.T) {
	p := testPipeline(t)

	raw := `John Smith
john@example.com

SUMMARY
Seasoned backend engineer.

SKILLS
py, js, Kubernetes

EXPERIENCE
Software Developer at Google Inc
Jan 2020 - Dec 2021
• built services

EDUCATION
MIT
BSc Computer Science
2018-2022`

	resume := p.ProcessText(context.Background(), raw)
	require.NotNil(t, resume)

	assert.Equal(t, "John Smith", resume.Contact.Name)
	assert.Equal(t, "john@example.com", resume.Contact.Email)
	assert.Equal(t, "Seasoned backend engineer.", resume.Summary)
	assert.Equal(t, []string{"JavaScript", "Kubernetes", "Python"}, resume.Skills)

	require.Len(t, resume.Experience, 1)
	exp := resume.Experience[0]
	assert.Equal(t, "Google", exp.Company)
	assert.Equal(t, "Software Engineer", exp.Position)
	assert.Equal(t, 23, exp.DurationMonths)

	require.Len(t, resume.Education, 1)
	assert.Equal(t, "Massachusetts Institute of Technology", resume.Education[0].Institution)
}

func TestPipelineUnclassifiableDocument(t *testing.T) {
	p := testPipeline(t)

	resume := p.ProcessText(context.Background(), "lorem ipsum dolor sit amet\nnothing resume-like here")
	require.NotNil(t, resume)
	assert.Empty(t, resume.Education)
	assert.Empty(t, resume.Experience)
	assert.Empty(t, resume.Skills)
	assert.Empty(t, resume.Projects)
	assert.Empty(t, resume.Certifications)
}

func TestPipelineNewHardFailure(t *testing.T) {
	// 规则和本体全都没有才算启动失败
	cfg := &config.Config{}
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrNoUsableConfig)

	// 只有规则没有本体可以启动
	cfg = config.DefaultConfig()
	_, err = New(cfg)
	assert.NoError(t, err)
}
