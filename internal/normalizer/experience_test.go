package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/ontology"
	"cv-parser-go/internal/types"
)

func testExperienceNormalizer() *ExperienceNormalizer {
	store := ontology.NewStoreFromMaps(
		map[string][]string{
			"JavaScript": {"js"},
			"Python":     {"py"},
		},
		nil, nil, nil,
		map[string][]string{
			"Google":    {"Google Inc", "Alphabet"},
			"Microsoft": {"MSFT", "Microsoft Corporation"},
		},
		map[string][]string{
			"Software Engineer": {"Software Developer", "Programmer"},
		},
	)
	dates := NewDateResolverAt(func() time.Time {
		return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	})
	th := config.ThresholdConfig{
		Skill: 90, Institution: 85, Degree: 85, Field: 85, Company: 85, Title: 90,
	}
	skills := NewSkillNormalizer(store.Skills, th.Skill, nil)
	return NewExperienceNormalizer(store, th, dates, skills)
}

func TestNormalizeCompany(t *testing.T) {
	n := testExperienceNormalizer()

	// 精确命中变体
	assert.Equal(t, "Google", n.NormalizeCompany("Alphabet"))
	// 法律实体后缀洗掉后命中
	assert.Equal(t, "Google", n.NormalizeCompany("Google Inc."))
	assert.Equal(t, "Microsoft", n.NormalizeCompany("Microsoft Corporation"))
	// 开放词表：匹配不上保留原始写法
	assert.Equal(t, "Acme Widgets LLC", n.NormalizeCompany("Acme Widgets LLC"))
	assert.Equal(t, "", n.NormalizeCompany("  "))
}

func TestNormalizeCompanyIdempotent(t *testing.T) {
	n := testExperienceNormalizer()

	for _, input := range []string{"Google Inc.", "Acme Widgets LLC", "MSFT"} {
		once := n.NormalizeCompany(input)
		assert.Equal(t, once, n.NormalizeCompany(once), "input: %s", input)
	}
}

func TestNormalizeTitleAbbreviations(t *testing.T) {
	// 用空本体只验证缩写展开
	empty := ontology.NewStoreFromMaps(nil, nil, nil, nil, nil, nil)
	dates := NewDateResolverAt(func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) })
	th := config.ThresholdConfig{Title: 90}
	n := NewExperienceNormalizer(empty, th, dates, NewSkillNormalizer(empty.Skills, 90, nil))

	cases := map[string]string{
		"Sr. SWE":    "Senior Software Engineer",
		"Jr. Dev":    "Junior Dev",
		"Eng Mgr":    "Eng Manager",
		"VP Sales":   "Vice President Sales",
		"SDE":        "Software Development Engineer",
		"Dir of Eng": "Director of Eng",
	}
	for input, want := range cases {
		assert.Equal(t, want, n.NormalizeTitle(input), "input: %s", input)
	}
}

func TestNormalizeTitleOntology(t *testing.T) {
	n := testExperienceNormalizer()

	assert.Equal(t, "Software Engineer", n.NormalizeTitle("Programmer"))
	assert.Equal(t, "Software Engineer", n.NormalizeTitle("software developer"))
	// 本体外职位保留展开后的写法
	assert.Equal(t, "Chief Baker", n.NormalizeTitle("Chief Baker"))
}

func TestExperienceNormalizeEntries(t *testing.T) {
	n := testExperienceNormalizer()

	raws := []types.RawExperience{
		{
			Company:      "Google Inc.",
			Position:     "Programmer",
			StartDate:    "Jan 2020",
			EndDate:      "Present",
			Description:  "• built services\n• ran them",
			Technologies: []string{"js", "py", "js"},
		},
		{
			// 公司和职位全空丢弃
			Company:  "",
			Position: "",
		},
	}

	entries := n.NormalizeEntries(raws)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Google", e.Company)
	assert.Equal(t, "Software Engineer", e.Position)
	require.NotNil(t, e.StartDate)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, "2020-01-01", *e.StartDate)
	assert.Equal(t, "2024-06-15", *e.EndDate)
	assert.Equal(t, "Built services ran them", e.Description)
	assert.Equal(t, []string{"JavaScript", "Python"}, e.Technologies)
}
