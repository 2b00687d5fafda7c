package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"

	"cv-parser-go/internal/api/handler"
	"cv-parser-go/internal/tracing"
)

// ParseRequest 同步解析/异步提交的请求体
type ParseRequest struct {
	RawText       string `json:"raw_text"`
	Filename      string `json:"filename"`
	SourceChannel string `json:"source_channel"`
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler) {
	api := h.Group("/api/v1")

	// 同步解析：直接返回结构化结果，不落存储
	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		var req ParseRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}
		if req.RawText == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "raw_text不能为空"})
			return
		}

		resume, err := resumeHandler.ParseSync(c, req.RawText)
		if err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resume)
	})

	// 异步提交：去重后入队，立即返回提交标识
	api.POST("/resume/submit", func(c context.Context, ctx *app.RequestContext) {
		var req ParseRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}
		if req.RawText == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "raw_text不能为空"})
			return
		}

		resp, err := resumeHandler.HandleSubmit(c, req.RawText, req.Filename, req.SourceChannel)
		if err != nil {
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusAccepted, resp)
	})

	// 查询解析结果
	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")

		data, err := resumeHandler.GetResume(c, submissionUUID)
		if err != nil {
			if errors.Is(err, handler.ErrResumeNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "解析结果不存在"})
				return
			}
			tracing.RecordHTTPError(trace.SpanFromContext(c), err, consts.StatusInternalServerError)
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.Data(consts.StatusOK, "application/json; charset=utf-8", data)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
