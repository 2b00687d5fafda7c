package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cv-parser-go/internal/ontology"
)

func testSkillMapping() *ontology.Mapping {
	return ontology.NewMapping("skills", map[string][]string{
		"JavaScript": {"js", "ECMAScript", "Javascript"},
		"Python":     {"py", "python3"},
		"PostgreSQL": {"postgres", "psql"},
	})
}

func TestSkillClean(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, nil)

	main, subs := n.Clean("Languages: Python")
	assert.Equal(t, "Python", main)
	assert.Empty(t, subs)

	main, subs = n.Clean("Python (Django, Flask)")
	assert.Equal(t, "Python", main)
	assert.Equal(t, []string{"Django", "Flask"}, subs)

	main, _ = n.Clean("  • C++  ")
	assert.Equal(t, "C++", main)
}

func TestSkillNormalize(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, nil)

	// 精确命中变体
	assert.Equal(t, "JavaScript", n.Normalize("js"))
	assert.Equal(t, "Python", n.Normalize("python3"))
	// 大小写不敏感
	assert.Equal(t, "Python", n.Normalize("PYTHON"))
	assert.Equal(t, "Python", n.Normalize("Python"))
	// 本体里没有的保留清洗结果
	assert.Equal(t, "Rust", n.Normalize("Rust"))
}

func TestSkillNormalizeIdempotent(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, nil)

	for _, input := range []string{"js", "PYTHON", "Rust", "postgres"} {
		once := n.Normalize(input)
		assert.Equal(t, once, n.Normalize(once), "input: %s", input)
	}
}

func TestSkillNormalizeList(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, []string{"and", "etc"})

	got := n.NormalizeList([]string{"js", "Javascript", "python3", "and", "x", "42", "Rust"})
	// 去重、过滤停用词/单字符/纯数字，输出排序
	assert.Equal(t, []string{"JavaScript", "Python", "Rust"}, got)
}

func TestSkillNormalizeListOrderIndependent(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, nil)

	a := n.NormalizeList([]string{"postgres", "py", "Rust"})
	b := n.NormalizeList([]string{"Rust", "py", "postgres"})
	assert.Equal(t, a, b)
}

func TestSkillNormalizeListSubSkills(t *testing.T) {
	n := NewSkillNormalizer(testSkillMapping(), 90, nil)

	got := n.NormalizeList([]string{"Python (Django, Flask)"})
	assert.Equal(t, []string{"Django", "Flask", "Python"}, got)
}
