package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateResolver 把简历里五花八门的日期写法解析为具体日期
// 解析链路：当前时间关键字 -> 通用解析 -> 季度/月份/数字/纯年份兜底。
// 全部兜底失败时放弃，绝不编造日期。
type DateResolver struct {
	now func() time.Time // 可注入，测试时固定时钟
}

// NewDateResolver 构建使用系统时钟的解析器
func NewDateResolver() *DateResolver {
	return &DateResolver{now: time.Now}
}

// NewDateResolverAt 构建固定时钟的解析器
func NewDateResolverAt(now func() time.Time) *DateResolver {
	return &DateResolver{now: now}
}

var (
	// 不锚定整行，"Present (remote)" 这类带备注的写法也要认
	presentRe   = regexp.MustCompile(`(?i)\b(present|current|now|ongoing|today)\b`)
	quarterRe   = regexp.MustCompile(`(?i)q([1-4])\s*(\d{4})`)
	monthWordRe = regexp.MustCompile(`(?i)([a-z]+)[^\d]*(\d{4})`)
	numMonthRe  = regexp.MustCompile(`(\d{1,2})[^\d]*(\d{4})`)
	numberRe    = regexp.MustCompile(`\d+`)
	yearRe      = regexp.MustCompile(`\d{4}`)

	// 分隔符按优先级依次尝试，裸连字符放最后，
	// 避免把 "2024-01" 这类日期内部的连字符当成区间分隔
	rangeSplitRe = regexp.MustCompile(`(?i)\s+to\s+|–|—`)
	spacedDashRe = regexp.MustCompile(`\s+-\s+`)
)

// 月份名前三位 -> 月份，"sept" 等变体靠前缀截断命中
var monthPrefixes = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Normalize 解析单个日期表达，失败时第二个返回值为false
func (r *DateResolver) Normalize(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if presentRe.MatchString(s) {
		n := r.now()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), true
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// 没写年份且解析结果在未来的，按去年算："March 5" 多半指最近一次
		if !yearRe.MatchString(s) && t.After(r.now()) {
			t = t.AddDate(-1, 0, 0)
		}
		return t, true
	}

	// 季度写法 "Q3 2021"
	if m := quarterRe.FindStringSubmatch(s); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	}

	// 月份名 + 年份，如 "Sept. 2019"
	if m := monthWordRe.FindStringSubmatch(s); m != nil {
		word := strings.ToLower(m[1])
		if len(word) >= 3 {
			if month, ok := monthPrefixes[word[:3]]; ok {
				year, _ := strconv.Atoi(m[2])
				return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
			}
		}
	}

	// 数字月份 + 年份，如 "03/2019"
	if m := numMonthRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			year, _ := strconv.Atoi(m[2])
			return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	// 纯年份：整串只有一个数字且恰好4位
	if nums := numberRe.FindAllString(s, -1); len(nums) == 1 && len(nums[0]) == 4 {
		year, _ := strconv.Atoi(nums[0])
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// NormalizeToString 解析后格式化为 "2006-01-02"，失败返回nil
func (r *DateResolver) NormalizeToString(raw string) *string {
	t, ok := r.Normalize(raw)
	if !ok {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ExtractPeriod 解析 "2018 - 2022"、"Jan 2020 to Present" 这类时间区间
// 任一端解析失败时对应端为nil
func (r *DateResolver) ExtractPeriod(raw string) (start, end *time.Time) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	var left, right string
	switch {
	case rangeSplitRe.MatchString(s):
		parts := rangeSplitRe.Split(s, 2)
		left, right = parts[0], parts[1]
	case spacedDashRe.MatchString(s):
		parts := spacedDashRe.Split(s, 2)
		left, right = parts[0], parts[1]
	case strings.Count(s, "-") == 1:
		parts := strings.SplitN(s, "-", 2)
		left, right = parts[0], parts[1]
	default:
		// 没有分隔符的整串同时充当起止两端
		left, right = s, s
	}

	if t, ok := r.Normalize(left); ok {
		start = &t
	}
	if t, ok := r.Normalize(right); ok {
		end = &t
	}
	return start, end
}

// DurationMonths 计算两个日期之间的整月数
// 结束日的"日"大于开始日时多算一个月，负数截断为0。
func DurationMonths(start, end time.Time) int {
	months := (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month()))
	if end.Day() > start.Day() {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}
