package types

// Contact 归一化后的联系方式
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Education 归一化后的教育经历
// 日期为 "YYYY-MM-DD" 格式字符串，无法解析时为 null
type Education struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"field_of_study"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	GPA          *float64 `json:"gpa,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Experience 归一化后的工作经历
type Experience struct {
	Company        string   `json:"company"`
	Position       string   `json:"position"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies"`
	DurationMonths int      `json:"duration_months"`
}

// Project 归一化后的项目经历
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Resume 最终的结构化简历记录，聚合根
// 由装配器构建，返回后不再修改；列表字段永远不为nil
type Resume struct {
	Contact        Contact      `json:"contact"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Certifications []string     `json:"certifications"`
}

// NewResume 返回所有集合均已初始化的空简历
func NewResume() *Resume {
	return &Resume{
		Skills:         []string{},
		Education:      []Education{},
		Experience:     []Experience{},
		Projects:       []Project{},
		Certifications: []string{},
	}
}
