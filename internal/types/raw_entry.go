package types

// 本文件定义抽取阶段产出的松散中间记录（RawEntry）。
// 它们只在流水线内部流转，字段均为未归一化的原始字符串。
// 归一化阶段会把它们转换为强类型的 Resume 子记录。

// RawEducation 教育经历的原始条目
type RawEducation struct {
	Institution  string   // 学校原始名称
	Degree       string   // 学位原始文本
	FieldOfStudy string   // 专业原始文本
	StartDate    string   // 开始日期原始文本
	EndDate      string   // 结束日期原始文本
	GPA          string   // GPA原始文本，如 "GPA: 3.8"
	Description  string   // 条目描述
	Achievements []string // 要点列表（以•或-开头的行）
}

// RawExperience 工作经历的原始条目
type RawExperience struct {
	Company      string   // 公司原始名称
	Position     string   // 职位原始文本
	StartDate    string   // 开始日期原始文本
	EndDate      string   // 结束日期原始文本
	Description  string   // 条目描述
	Technologies []string // 技术栈原始列表
}

// RawProject 项目经历的原始条目
type RawProject struct {
	Name         string
	Description  string
	Technologies []string
}

// RawContact 联系方式的原始字段
type RawContact struct {
	Name     string
	Phone    string
	Email    string
	LinkedIn string
	GitHub   string
}
