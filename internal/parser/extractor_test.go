package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducationEntries(t *testing.T) {
	content := "MIT\nBSc Computer Science\n2018-2022 GPA: 3.8"

	entries := ExtractEducationEntries(content)
	require.Len(t, entries, 1)

	e := entries[0]
	// 学位行之前的挂起行回填为院校
	assert.Equal(t, "MIT", e.Institution)
	assert.Equal(t, "BSc", e.Degree)
	assert.Equal(t, "Computer Science", e.FieldOfStudy)
	assert.Equal(t, "2018", e.StartDate)
	assert.Equal(t, "2022", e.EndDate)
	assert.Equal(t, "3.8", e.GPA)
}

func TestExtractEducationMultipleEntries(t *testing.T) {
	content := `Bachelor of Science in Computer Science
Stanford University
2014 - 2018
• Dean's List

Master of Science in Machine Learning
MIT
2018 to 2020`

	entries := ExtractEducationEntries(content)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Bachelor of Science", first.Degree)
	assert.Equal(t, "Computer Science", first.FieldOfStudy)
	assert.Equal(t, "Stanford University", first.Institution)
	assert.Equal(t, "2014", first.StartDate)
	assert.Equal(t, "2018", first.EndDate)
	require.Len(t, first.Achievements, 1)
	assert.Equal(t, "Dean's List", first.Achievements[0])

	second := entries[1]
	assert.Equal(t, "Master of Science", second.Degree)
	assert.Equal(t, "Machine Learning", second.FieldOfStudy)
	assert.Equal(t, "MIT", second.Institution)
	assert.Equal(t, "2018", second.StartDate)
	assert.Equal(t, "2020", second.EndDate)
}

func TestExtractEducationEmpty(t *testing.T) {
	assert.Empty(t, ExtractEducationEntries(""))
	assert.Empty(t, ExtractEducationEntries("   \n  \n"))
}

func TestExtractExperienceEntries(t *testing.T) {
	content := `Software Engineer at Google
Jan 2020 - Present
• built backend services
• ran deployments
Technologies: Go, Python, Kubernetes

Acme Corp
Junior Developer
2018 - 2020`

	entries := ExtractExperienceEntries(content)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Software Engineer", first.Position)
	assert.Equal(t, "Google", first.Company)
	assert.Equal(t, "Jan 2020", first.StartDate)
	assert.Equal(t, "Present", first.EndDate)
	assert.Contains(t, first.Description, "built backend services")
	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, first.Technologies)

	second := entries[1]
	assert.Equal(t, "Junior Developer", second.Position)
	// 职位行之前的挂起行回填为公司
	assert.Equal(t, "Acme Corp", second.Company)
	assert.Equal(t, "2018", second.StartDate)
	assert.Equal(t, "2020", second.EndDate)
}

func TestExtractExperienceEmpty(t *testing.T) {
	assert.Empty(t, ExtractExperienceEntries(""))
}

func TestExtractProjectEntries(t *testing.T) {
	content := `Inventory Tracker:
Built a warehouse inventory system
Technologies: Go, PostgreSQL

1. Chat Bot
Responds to customer queries
Tech stack: Python | Redis`

	entries := ExtractProjectEntries(content)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Inventory Tracker", first.Name)
	assert.Contains(t, first.Description, "warehouse inventory system")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, first.Technologies)

	second := entries[1]
	assert.Equal(t, "Chat Bot", second.Name)
	assert.Contains(t, second.Description, "customer queries")
	assert.Equal(t, []string{"Python", "Redis"}, second.Technologies)
}

func TestExtractProjectDescriptionLinesStayDescriptions(t *testing.T) {
	// 大写动词开头的描述行不能被当成新项目名
	content := `Inventory Tracker
Built a warehouse inventory system
Tracks stock levels in real time
Technologies: Go, PostgreSQL

Chat Bot
Responds to customer queries`

	entries := ExtractProjectEntries(content)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Inventory Tracker", first.Name)
	assert.Contains(t, first.Description, "warehouse inventory system")
	assert.Contains(t, first.Description, "stock levels")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, first.Technologies)

	second := entries[1]
	assert.Equal(t, "Chat Bot", second.Name)
	assert.Equal(t, "Responds to customer queries", second.Description)
	assert.Empty(t, second.Technologies)
}

func TestExtractCertifications(t *testing.T) {
	content := `AWS Certified Solutions Architect
Amazon Web Services, 2021
CKA Certification
Cloud Native Computing Foundation`

	certs := ExtractCertifications(content)
	require.Len(t, certs, 2)
	assert.Equal(t, "AWS Certified Solutions Architect Amazon Web Services, 2021", certs[0])
	assert.Equal(t, "CKA Certification Cloud Native Computing Foundation", certs[1])
}

func TestExtractCertificationsEmpty(t *testing.T) {
	assert.Empty(t, ExtractCertifications("nothing relevant here"))
}

func TestExtractContact(t *testing.T) {
	content := `John Smith
john.smith@example.com
+1 (555) 123-4567
linkedin.com/in/john-smith
github.com/jsmith`

	c := ExtractContact(content)
	assert.Equal(t, "John Smith", c.Name)
	assert.Equal(t, "john.smith@example.com", c.Email)
	assert.Equal(t, "+1 (555) 123-4567", c.Phone)
	assert.Equal(t, "linkedin.com/in/john-smith", c.LinkedIn)
	assert.Equal(t, "github.com/jsmith", c.GitHub)
}

func TestExtractContactPartial(t *testing.T) {
	c := ExtractContact("reach me at jane@corp.io")
	assert.Equal(t, "", c.Name)
	assert.Equal(t, "jane@corp.io", c.Email)
	assert.Equal(t, "", c.Phone)
}

func TestExtractSummaryTruncation(t *testing.T) {
	short := "Seasoned engineer with a decade of experience."
	assert.Equal(t, short, ExtractSummary(short))

	// 超长文本在句子边界截断
	sentence := "This is a sentence about work. "
	long := strings.Repeat(sentence, 30)
	got := ExtractSummary(long)
	assert.LessOrEqual(t, len(got), summaryMaxLen)
	assert.True(t, strings.HasSuffix(got, "."), "应当在句号处截断: %q", got[len(got)-10:])
}

func TestExtractSkills(t *testing.T) {
	content := "Go, Python; Kubernetes\nDocker • Terraform / Ansible"
	got := ExtractSkills(content)
	assert.Equal(t, []string{"Go", "Python", "Kubernetes", "Docker", "Terraform", "Ansible"}, got)
}
