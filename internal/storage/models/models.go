package models

import (
	"time"

	"gorm.io/datatypes"

	"cv-parser-go/internal/constants"
)

// ResumeSubmission 简历提交记录表
type ResumeSubmission struct {
	SubmissionUUID      string    `gorm:"type:char(36);primaryKey"`
	SubmissionTimestamp time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rs_submission_timestamp"`
	SourceChannel       string    `gorm:"type:varchar(100)"`
	OriginalFilename    string    `gorm:"type:varchar(255)"`
	RawTextPathOSS      string    `gorm:"type:varchar(1024)"`
	RawTextMD5          string    `gorm:"type:char(32);index:idx_rs_raw_text_md5"`
	ResultPathOSS       string    `gorm:"type:varchar(1024)"`
	ProcessingStatus    string    `gorm:"type:varchar(50);default:'PENDING';index:idx_rs_processing_status"`
	ParserVersion       string    `gorm:"type:varchar(50)"`
	ErrorMessage        string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeSubmission) TableName() string {
	return "resume_submissions"
}

// NewResumeSubmission 构造处于初始状态的提交记录
func NewResumeSubmission(submissionUUID, sourceChannel, originalFilename, rawTextMD5 string) *ResumeSubmission {
	return &ResumeSubmission{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: time.Now(),
		SourceChannel:       sourceChannel,
		OriginalFilename:    originalFilename,
		RawTextMD5:          rawTextMD5,
		ProcessingStatus:    constants.StatusPending,
		ParserVersion:       constants.ParserVersion,
	}
}

// ParsedResume 结构化解析结果表
// ResumeData保存完整的结构化JSON，常用检索字段单独冗余一份。
type ParsedResume struct {
	SubmissionUUID string         `gorm:"type:char(36);primaryKey"`
	ResumeData     datatypes.JSON `gorm:"type:json;not null"`
	ContactName    string         `gorm:"type:varchar(255);index:idx_pr_contact_name"`
	ContactEmail   string         `gorm:"type:varchar(255);index:idx_pr_contact_email"`
	ParserVersion  string         `gorm:"type:varchar(50)"`
	CreatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Submission *ResumeSubmission `gorm:"foreignKey:SubmissionUUID;references:SubmissionUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ParsedResume) TableName() string {
	return "parsed_resumes"
}
