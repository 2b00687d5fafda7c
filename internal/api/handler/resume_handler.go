package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/constants"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/pipeline"
	"cv-parser-go/internal/storage"
	"cv-parser-go/internal/storage/models"
	"cv-parser-go/internal/tracing"
	"cv-parser-go/internal/types"
	"cv-parser-go/pkg/utils"
)

// 单条消息的处理时限
const parseMessageTimeout = 2 * time.Minute

var handlerTracer = otel.Tracer("cv-parser/handler")

// ResumeHandler 简历处理器，负责协调提交、解析、查询流程
type ResumeHandler struct {
	cfg      *config.Config
	storage  *storage.Storage
	pipeline *pipeline.Pipeline
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(cfg *config.Config, st *storage.Storage, p *pipeline.Pipeline) *ResumeHandler {
	return &ResumeHandler{
		cfg:      cfg,
		storage:  st,
		pipeline: p,
	}
}

// SubmitResponse 异步提交响应
type SubmitResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// ParseSync 同步解析原始文本，不落任何存储
func (h *ResumeHandler) ParseSync(ctx context.Context, rawText string) (*types.Resume, error) {
	if rawText == "" {
		return nil, fmt.Errorf("原始文本不能为空")
	}
	return h.pipeline.ProcessText(ctx, rawText), nil
}

// HandleSubmit 处理异步提交：去重、落对象存储、写数据库、发事件
func (h *ResumeHandler) HandleSubmit(ctx context.Context, rawText, filename, sourceChannel string) (*SubmitResponse, error) {
	if rawText == "" {
		return nil, fmt.Errorf("原始文本不能为空")
	}
	if h.storage == nil || h.storage.MinIO == nil || h.storage.MySQL == nil || h.storage.RabbitMQ == nil {
		return nil, fmt.Errorf("异步提交所需的存储组件不可用")
	}
	if sourceChannel == "" {
		sourceChannel = "api"
	}

	// 1. 基于原始文本MD5去重
	md5Hex := utils.CalculateMD5([]byte(rawText))
	if err := h.checkRawTextDuplicate(ctx, md5Hex); err != nil {
		if errors.Is(err, ErrDuplicateContent) {
			// 内容重复是正常流程，不算提交失败
			logger.Info().Str("md5", md5Hex).Str("filename", filename).Msg("检测到重复的文档内容, 跳过处理")
			return &SubmitResponse{Status: constants.StatusDuplicateContent}, nil
		}
		logger.Error().Err(err).Str("md5", md5Hex).Msg("查询MD5去重集合失败")
		tracing.RecordError(trace.SpanFromContext(ctx), err, tracing.ErrorTypeRedis)
		return nil, err
	}

	// 2. 生成UUIDv7作为提交标识
	uuidV7, err := uuid.NewV7()
	if err != nil {
		h.rollbackMD5(ctx, md5Hex)
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	// 3. 原始文本落对象存储
	rawTextPath, err := h.storage.MinIO.UploadRawText(ctx, submissionUUID, rawText)
	if err != nil {
		h.rollbackMD5(ctx, md5Hex)
		return nil, NewUploadError(submissionUUID, err.Error())
	}

	// 4. 写提交记录
	submission := models.NewResumeSubmission(submissionUUID, sourceChannel, filename, md5Hex)
	submission.RawTextPathOSS = rawTextPath
	if err := h.storage.MySQL.CreateSubmission(ctx, submission); err != nil {
		h.rollbackMD5(ctx, md5Hex)
		return nil, err
	}

	// 5. 发布提交事件
	if err := h.ensureTopology(); err != nil {
		return nil, NewPublishError(submissionUUID, err.Error())
	}
	msg := storage.DocumentSubmittedMessage{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: submission.SubmissionTimestamp,
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		RawTextPathOSS:      rawTextPath,
		RawTextMD5:          md5Hex,
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, constants.DocumentEventsExchange, constants.RoutingKeySubmitted, msg, true); err != nil {
		// 消息没发出去，记录已入库，标记失败等待重试
		if updateErr := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, constants.StatusFailed, err.Error()); updateErr != nil {
			logger.Error().Err(updateErr).Str("submission_uuid", submissionUUID).Msg("标记提交失败状态时出错")
		}
		tracing.RecordError(trace.SpanFromContext(ctx), err, tracing.ErrorTypeRabbitMQ)
		return nil, NewPublishError(submissionUUID, err.Error())
	}

	logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("filename", filename).
		Str("source_channel", sourceChannel).
		Msg("文档提交成功, 等待解析")

	return &SubmitResponse{SubmissionUUID: submissionUUID, Status: constants.StatusPending}, nil
}

// checkRawTextDuplicate 查询并登记MD5去重集合
// 内容重复时返回ErrDuplicateContent，Redis未配置时跳过去重
func (h *ResumeHandler) checkRawTextDuplicate(ctx context.Context, md5Hex string) error {
	if h.storage.Redis == nil {
		return nil
	}
	duplicate, err := h.storage.Redis.CheckAndAddRawTextMD5(ctx, md5Hex)
	if err != nil {
		return fmt.Errorf("检查文档内容重复性失败: %w", err)
	}
	if duplicate {
		return ErrDuplicateContent
	}
	return nil
}

// rollbackMD5 提交失败时回滚去重记录，让同一文档可以重新提交
func (h *ResumeHandler) rollbackMD5(ctx context.Context, md5Hex string) {
	if h.storage.Redis == nil {
		return
	}
	if err := h.storage.Redis.RemoveRawTextMD5(ctx, md5Hex); err != nil {
		logger.Warn().Err(err).Str("md5", md5Hex).Msg("回滚MD5去重记录失败")
	}
}

// ensureTopology 声明交换机、队列和绑定
func (h *ResumeHandler) ensureTopology() error {
	mq := h.storage.RabbitMQ
	if err := mq.EnsureExchange(constants.DocumentEventsExchange, "topic", true); err != nil {
		return err
	}
	if err := mq.EnsureQueue(constants.ParseQueue, true); err != nil {
		return err
	}
	return mq.BindQueue(constants.ParseQueue, constants.DocumentEventsExchange, constants.RoutingKeySubmitted)
}

// StartParseConsumer 启动解析消费者
func (h *ResumeHandler) StartParseConsumer() (chan struct{}, error) {
	if h.storage == nil || h.storage.RabbitMQ == nil {
		return nil, fmt.Errorf("RabbitMQ不可用, 无法启动解析消费者")
	}
	if err := h.ensureTopology(); err != nil {
		return nil, fmt.Errorf("声明消息拓扑失败: %w", err)
	}

	prefetch := h.cfg.RabbitMQ.PrefetchCount
	if prefetch <= 0 {
		prefetch = 1
	}
	return h.storage.RabbitMQ.StartConsumer(constants.ParseQueue, prefetch, h.handleParseMessage)
}

// handleParseMessage 消费单条提交事件
// 返回true表示ack，false表示nack并重新入队
func (h *ResumeHandler) handleParseMessage(body []byte) bool {
	var msg storage.DocumentSubmittedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		// 消息格式损坏，重新入队只会死循环，直接丢弃
		logger.Error().Err(err).Msg("解析提交事件消息失败, 丢弃该消息")
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), parseMessageTimeout)
	defer cancel()

	if err := h.processSubmission(ctx, &msg); err != nil {
		if errors.Is(err, ErrRawTextDownload) {
			// 对象存储暂时不可用时重新入队等待重试
			logger.Warn().Err(err).Str("submission_uuid", msg.SubmissionUUID).Msg("下载原始文本失败, 消息重新入队")
			return false
		}

		logger.Error().Err(err).Str("submission_uuid", msg.SubmissionUUID).Msg("处理提交事件失败")
		h.recordFailure(ctx, msg.SubmissionUUID, err)
		return true
	}
	return true
}

// processSubmission 执行完整的解析落库流程
func (h *ResumeHandler) processSubmission(ctx context.Context, msg *storage.DocumentSubmittedMessage) error {
	submissionUUID := msg.SubmissionUUID
	ctx, span := handlerTracer.Start(ctx, "ProcessSubmission",
		trace.WithAttributes(attribute.String("submission_uuid", submissionUUID)))
	defer span.End()

	if err := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, constants.StatusProcessing, ""); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewUpdateError(submissionUUID, err.Error())
	}

	// 1. 取回原始文本
	rawText, err := h.storage.MinIO.GetRawText(ctx, msg.RawTextPathOSS)
	if err != nil {
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeStorage,
			attribute.String("oss.path", msg.RawTextPathOSS))
		return NewDownloadError(submissionUUID, err.Error())
	}
	span.SetAttributes(attribute.String("document.preview", tracing.SafeDocumentContent(rawText)))

	// 2. 文档结构化解析
	resume := h.pipeline.ProcessText(ctx, rawText)

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return NewParseError(submissionUUID, fmt.Sprintf("序列化解析结果失败: %v", err))
	}

	// 3. 结果落对象存储
	resultPath, err := h.storage.MinIO.UploadResultJSON(ctx, submissionUUID, resumeJSON)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return NewStoreError(submissionUUID, err.Error())
	}
	if err := h.storage.MySQL.SetSubmissionResultPath(ctx, submissionUUID, resultPath); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("记录结果路径失败")
	}

	// 4. 结果落数据库
	parsed := &models.ParsedResume{
		SubmissionUUID: submissionUUID,
		ResumeData:     datatypes.JSON(resumeJSON),
		ContactName:    resume.Contact.Name,
		ContactEmail:   resume.Contact.Email,
		ParserVersion:  constants.ParserVersion,
	}
	if err := h.storage.MySQL.SaveParsedResume(ctx, parsed); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewStoreError(submissionUUID, err.Error())
	}

	// 5. 写结果缓存，失败不影响主流程
	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheResume(ctx, submissionUUID, resume); err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("写解析结果缓存失败")
		}
	}

	if err := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, constants.StatusCompleted, ""); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewUpdateError(submissionUUID, err.Error())
	}

	// 6. 发布解析完成事件
	event := storage.ResumeParsedMessage{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusCompleted,
		ResultPathOSS:  resultPath,
		ParserVersion:  constants.ParserVersion,
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, constants.DocumentEventsExchange, constants.RoutingKeyParsed, event, true); err != nil {
		// 解析结果已经落库，事件发布失败只记录
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("发布解析完成事件失败")
	}

	logger.Info().Str("submission_uuid", submissionUUID).Msg("文档解析完成")
	return nil
}

// recordFailure 将失败状态落库并发布失败事件
func (h *ResumeHandler) recordFailure(ctx context.Context, submissionUUID string, cause error) {
	if submissionUUID == "" {
		return
	}
	if err := h.storage.MySQL.UpdateSubmissionStatus(ctx, submissionUUID, constants.StatusFailed, cause.Error()); err != nil {
		logger.Error().Err(err).Str("submission_uuid", submissionUUID).Msg("标记解析失败状态时出错")
	}

	event := storage.ResumeParsedMessage{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusFailed,
		ParserVersion:  constants.ParserVersion,
		Error:          cause.Error(),
	}
	if err := h.storage.RabbitMQ.PublishJSON(ctx, constants.DocumentEventsExchange, constants.RoutingKeyParsed, event, true); err != nil {
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("发布解析失败事件失败")
	}
}

// GetResume 查询结构化解析结果，优先读缓存
func (h *ResumeHandler) GetResume(ctx context.Context, submissionUUID string) ([]byte, error) {
	if submissionUUID == "" {
		return nil, fmt.Errorf("submission_uuid不能为空")
	}

	if h.storage.Redis != nil {
		data, err := h.storage.Redis.GetCachedResume(ctx, submissionUUID)
		if err == nil {
			logger.Debug().Str("submission_uuid", submissionUUID).Msg("解析结果缓存命中")
			return data, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读解析结果缓存失败")
		}
	}

	if h.storage.MySQL == nil {
		return nil, fmt.Errorf("MySQL不可用, 无法查询解析结果")
	}

	parsed, err := h.storage.MySQL.GetParsedResume(ctx, submissionUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("查询解析结果失败: %w", err)
	}

	// 回填缓存
	if h.storage.Redis != nil {
		var resume types.Resume
		if err := json.Unmarshal(parsed.ResumeData, &resume); err == nil {
			if err := h.storage.Redis.CacheResume(ctx, submissionUUID, &resume); err != nil {
				logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填解析结果缓存失败")
			}
		}
	}

	return []byte(parsed.ResumeData), nil
}
