package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-parser-go/internal/types"
)

func strPtr(s string) *string { return &s }

func TestAssembleDuration(t *testing.T) {
	a := NewAssembler()

	resume := a.Assemble(types.Contact{}, "", nil, nil, []types.Experience{
		{Company: "Acme", Position: "Engineer", StartDate: strPtr("2020-01-01"), EndDate: strPtr("2022-01-01")},
		// 结束早于开始截断为0
		{Company: "Acme", Position: "Engineer", StartDate: strPtr("2022-01-01"), EndDate: strPtr("2020-01-01")},
		// 缺日期为0
		{Company: "Acme", Position: "Engineer"},
	}, nil, nil)

	require.Len(t, resume.Experience, 3)
	assert.Equal(t, 24, resume.Experience[0].DurationMonths)
	assert.Equal(t, 0, resume.Experience[1].DurationMonths)
	assert.Equal(t, 0, resume.Experience[2].DurationMonths)
}

func TestAssembleProjectValidation(t *testing.T) {
	a := NewAssembler()

	resume := a.Assemble(types.Contact{}, "", nil, nil, nil, []types.Project{
		{Name: "Tracker", Description: "tracks things"},
		// 没有名称的项目丢弃
		{Name: "", Description: "orphan"},
	}, nil)

	require.Len(t, resume.Projects, 1)
	assert.Equal(t, "Tracker", resume.Projects[0].Name)
}

func TestAssembleJSONShape(t *testing.T) {
	a := NewAssembler()

	data, err := json.Marshal(a.Assemble(types.Contact{}, "", nil, nil, nil, nil, nil))
	require.NoError(t, err)

	// 列表字段输出为空数组而不是null
	s := string(data)
	assert.Contains(t, s, `"skills":[]`)
	assert.Contains(t, s, `"education":[]`)
	assert.Contains(t, s, `"experience":[]`)
	assert.Contains(t, s, `"projects":[]`)
	assert.Contains(t, s, `"certifications":[]`)
	assert.NotContains(t, s, "null")
}

func TestAssembleListDefaults(t *testing.T) {
	a := NewAssembler()

	resume := a.Assemble(types.Contact{}, "", nil,
		[]types.Education{{Institution: "Unknown", Degree: "Bachelor of Science"}},
		[]types.Experience{{Company: "Acme", Position: "Engineer"}},
		nil, nil)

	// 条目内部的列表字段同样不允许是nil
	require.Len(t, resume.Education, 1)
	assert.NotNil(t, resume.Education[0].Achievements)
	require.Len(t, resume.Experience, 1)
	assert.NotNil(t, resume.Experience[0].Technologies)
}
