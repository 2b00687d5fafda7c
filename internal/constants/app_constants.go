package constants

// 解析器版本，写入结果元数据，便于追踪历史数据由哪个版本产出
const ParserVersion = "v1.0"

// 标准章节名
const (
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionSkills         = "skills"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// 提交记录状态机
const (
	StatusPending          = "PENDING"
	StatusProcessing       = "PROCESSING"
	StatusCompleted        = "COMPLETED"
	StatusFailed           = "FAILED"
	StatusDuplicateContent = "DUPLICATE_CONTENT"
)

// RabbitMQ 拓扑
const (
	DocumentEventsExchange = "document.events"
	ParseQueue             = "document.parse.queue"
	RoutingKeySubmitted    = "document.submitted"
	RoutingKeyParsed       = "resume.parsed"
)

// MinIO 对象路径模板
const (
	RawTextObjectFormat = "raw/%s.txt"     // %s = submission UUID
	ResultObjectFormat  = "parsed/%s.json" // %s = submission UUID
)
