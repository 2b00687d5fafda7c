package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/constants"
	"cv-parser-go/internal/logger"
)

// MinIO 对象存储封装，保存原始文本与结构化结果
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
}

// NewMinIO 创建MinIO客户端并确保桶存在
func NewMinIO(cfg *config.MinIOConfig) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MinIO Endpoint配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{client: client, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range []string{cfg.RawTextBucket, cfg.ResultBucket} {
		if err := m.ensureBucketExists(ctx, bucket); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Msg("成功连接到MinIO服务器")
	return m, nil
}

// ensureBucketExists 检查桶是否存在，不存在则创建
func (m *MinIO) ensureBucketExists(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("桶名称不能为空")
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查桶 '%s' 是否存在失败: %w", bucketName, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("创建桶 '%s' 失败: %w", bucketName, err)
	}
	logger.Info().Str("bucket", bucketName).Msg("已创建MinIO桶")
	return nil
}

// UploadRawText 上传原始文档文本，返回对象路径
func (m *MinIO) UploadRawText(ctx context.Context, submissionUUID, text string) (string, error) {
	objectName := fmt.Sprintf(constants.RawTextObjectFormat, submissionUUID)
	reader := strings.NewReader(text)

	_, err := m.client.PutObject(ctx, m.cfg.RawTextBucket, objectName, reader, int64(reader.Len()),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return "", fmt.Errorf("上传原始文本失败: %w", err)
	}

	logger.Debug().Str("bucket", m.cfg.RawTextBucket).Str("object", objectName).Msg("原始文本已上传")
	return objectName, nil
}

// GetRawText 下载原始文档文本
func (m *MinIO) GetRawText(ctx context.Context, objectName string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.RawTextBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("获取原始文本对象失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("读取原始文本内容失败: %w", err)
	}
	return string(data), nil
}

// UploadResultJSON 上传结构化解析结果，返回对象路径
func (m *MinIO) UploadResultJSON(ctx context.Context, submissionUUID string, data []byte) (string, error) {
	objectName := fmt.Sprintf(constants.ResultObjectFormat, submissionUUID)

	_, err := m.client.PutObject(ctx, m.cfg.ResultBucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("上传解析结果失败: %w", err)
	}

	logger.Debug().Str("bucket", m.cfg.ResultBucket).Str("object", objectName).Msg("解析结果已上传")
	return objectName, nil
}

// GetResultJSON 下载结构化解析结果
func (m *MinIO) GetResultJSON(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.ResultBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取解析结果对象失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取解析结果内容失败: %w", err)
	}
	return data, nil
}

// GetPresignedResultURL 生成解析结果的预签名下载链接
func (m *MinIO) GetPresignedResultURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.cfg.ResultBucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名链接失败: %w", err)
	}
	return u.String(), nil
}
