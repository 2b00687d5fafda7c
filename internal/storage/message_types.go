package storage

import "time"

// DocumentSubmittedMessage 文档提交事件，提交接口发布，解析消费者订阅
type DocumentSubmittedMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`
	SubmissionTimestamp time.Time `json:"submission_timestamp"`
	SourceChannel       string    `json:"source_channel"`
	OriginalFilename    string    `json:"original_filename"`
	RawTextPathOSS      string    `json:"raw_text_path_oss"`
	RawTextMD5          string    `json:"raw_text_md5"`
}

// ResumeParsedMessage 解析完成事件，下游系统订阅
type ResumeParsedMessage struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
	ResultPathOSS  string `json:"result_path_oss,omitempty"`
	ParserVersion  string `json:"parser_version"`
	Error          string `json:"error,omitempty"`
}
