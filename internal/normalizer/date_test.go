package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
}

func TestDateResolverStandardFormats(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	cases := map[string]string{
		"2022-03-15":      "2022-03-15",
		"March 2020":      "2020-03-01",
		"Jan 2019":        "2019-01-01",
		"January 5, 2019": "2019-01-05",
		"03/2019":         "2019-03-01",
	}
	for input, want := range cases {
		got, ok := r.Normalize(input)
		require.True(t, ok, "input: %s", input)
		assert.Equal(t, want, got.Format("2006-01-02"), "input: %s", input)
	}
}

func TestDateResolverPresentKeywords(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	// 关键字带备注时同样要认
	for _, input := range []string{"Present", "current", "  NOW ", "ongoing", "Present (remote)", "current position"} {
		got, ok := r.Normalize(input)
		require.True(t, ok, "input: %s", input)
		assert.Equal(t, "2024-06-15", got.Format("2006-01-02"), "input: %s", input)
	}
}

func TestDateResolverQuarter(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	got, ok := r.Normalize("Q3 2021")
	require.True(t, ok)
	assert.Equal(t, "2021-07-01", got.Format("2006-01-02"))

	got, ok = r.Normalize("q1 2020")
	require.True(t, ok)
	assert.Equal(t, "2020-01-01", got.Format("2006-01-02"))
}

func TestDateResolverMonthNameVariants(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	// "Sept." 这类缩写靠前缀命中
	got, ok := r.Normalize("Sept. 2019")
	require.True(t, ok)
	assert.Equal(t, "2019-09-01", got.Format("2006-01-02"))
}

func TestDateResolverYearOnly(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	got, ok := r.Normalize("2018")
	require.True(t, ok)
	assert.Equal(t, "2018-01-01", got.Format("2006-01-02"))

	// 多个数字时不能当纯年份
	_, ok = r.Normalize("30 20 2020 99")
	assert.False(t, ok)
}

func TestDateResolverInvalid(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	for _, input := range []string{"", "   ", "not a date", "Feb 30 2020"} {
		_, ok := r.Normalize(input)
		assert.False(t, ok, "input: %q", input)
	}
}

func TestExtractPeriod(t *testing.T) {
	r := NewDateResolverAt(fixedClock)

	start, end := r.ExtractPeriod("2018-2022")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2018-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2022-01-01", end.Format("2006-01-02"))

	start, end = r.ExtractPeriod("Jan 2020 to Present")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2020-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2024-06-15", end.Format("2006-01-02"))

	start, end = r.ExtractPeriod("Jan 2020 - Present (remote)")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2020-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2024-06-15", end.Format("2006-01-02"))

	start, end = r.ExtractPeriod("March 2019 - June 2021")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2019-03-01", start.Format("2006-01-02"))
	assert.Equal(t, "2021-06-01", end.Format("2006-01-02"))

	// 没有分隔符时整串同时作为起止
	start, end = r.ExtractPeriod("2020")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, "2020-01-01", start.Format("2006-01-02"))
	assert.Equal(t, "2020-01-01", end.Format("2006-01-02"))

	// 垃圾输入两端都为nil
	start, end = r.ExtractPeriod("whenever - someday")
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestDurationMonths(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 24, DurationMonths(d(2020, 1, 1), d(2022, 1, 1)))
	assert.Equal(t, 0, DurationMonths(d(2022, 1, 1), d(2020, 1, 1)))
	assert.Equal(t, 1, DurationMonths(d(2020, 1, 1), d(2020, 2, 1)))
	// 结束日在月内更晚时补一个月
	assert.Equal(t, 1, DurationMonths(d(2020, 1, 1), d(2020, 1, 15)))
	assert.Equal(t, 0, DurationMonths(d(2020, 1, 1), d(2020, 1, 1)))
}
