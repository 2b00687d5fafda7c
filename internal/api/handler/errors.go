package handler

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrDuplicateContent   = errors.New("检测到重复的文档内容")
	ErrRawTextDownload    = errors.New("下载原始文本失败")
	ErrRawTextUpload      = errors.New("上传原始文本失败")
	ErrParseFailed        = errors.New("解析文档失败")
	ErrResultStore        = errors.New("保存解析结果失败")
	ErrPublishFailed      = errors.New("发布消息失败")
	ErrStatusUpdateFailed = errors.New("更新处理状态失败")
	ErrResumeNotFound     = errors.New("解析结果不存在")
)

// ParseProcessError 包含详细错误信息的自定义错误
type ParseProcessError struct {
	SubmissionUUID string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *ParseProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.SubmissionUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.SubmissionUUID)
}

func (e *ParseProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ParseProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDownloadError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "download",
		BaseErr:        ErrRawTextDownload,
		Detail:         detail,
	}
}

func NewUploadError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "upload",
		BaseErr:        ErrRawTextUpload,
		Detail:         detail,
	}
}

func NewParseError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "parse",
		BaseErr:        ErrParseFailed,
		Detail:         detail,
	}
}

func NewStoreError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "store",
		BaseErr:        ErrResultStore,
		Detail:         detail,
	}
}

func NewPublishError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "publish",
		BaseErr:        ErrPublishFailed,
		Detail:         detail,
	}
}

func NewUpdateError(uuid, detail string) error {
	return &ParseProcessError{
		SubmissionUUID: uuid,
		Op:             "update",
		BaseErr:        ErrStatusUpdateFailed,
		Detail:         detail,
	}
}
