package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/constants"
	"cv-parser-go/internal/logger"
)

// ErrNotFound 缓存未命中
var ErrNotFound = redis.Nil

// Redis 客户端封装，负责MD5去重与解析结果缓存
type Redis struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedis 创建Redis客户端
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("无法连接到Redis服务器 (%s): %w", cfg.Address, err)
	}

	// 为Redis命令启用链路追踪
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Warn().Err(err).Msg("为Redis启用链路追踪失败")
	}

	logger.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("成功连接到Redis服务器")
	return &Redis{client: client, cfg: cfg}, nil
}

// Client 返回底层客户端
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Close 关闭连接
func (r *Redis) Close() error {
	return r.client.Close()
}

// md5ExpireDuration MD5去重记录的保留时长
func (r *Redis) md5ExpireDuration() time.Duration {
	days := r.cfg.MD5RecordExpireDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// resultCacheDuration 解析结果缓存时长
func (r *Redis) resultCacheDuration() time.Duration {
	minutes := r.cfg.ResultCacheExpireMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// CheckAndAddRawTextMD5 检查原始文本MD5是否已存在，不存在则记录。
// 返回true表示是重复提交。
func (r *Redis) CheckAndAddRawTextMD5(ctx context.Context, md5Hex string) (bool, error) {
	if md5Hex == "" {
		return false, fmt.Errorf("MD5值不能为空")
	}

	added, err := r.client.SAdd(ctx, constants.RawTextMD5SetKey, md5Hex).Result()
	if err != nil {
		return false, fmt.Errorf("检查MD5去重集合失败: %w", err)
	}

	// 每次写入都刷新集合过期时间
	if err := r.client.Expire(ctx, constants.RawTextMD5SetKey, r.md5ExpireDuration()).Err(); err != nil {
		logger.Warn().Err(err).Msg("刷新MD5集合过期时间失败")
	}

	// SAdd返回0表示成员已存在
	return added == 0, nil
}

// RemoveRawTextMD5 从去重集合中删除MD5记录(处理失败时回滚用)
func (r *Redis) RemoveRawTextMD5(ctx context.Context, md5Hex string) error {
	if md5Hex == "" {
		return nil
	}
	if err := r.client.SRem(ctx, constants.RawTextMD5SetKey, md5Hex).Err(); err != nil {
		return fmt.Errorf("删除MD5记录失败: %w", err)
	}
	return nil
}

// CacheResume 缓存解析结果JSON
func (r *Redis) CacheResume(ctx context.Context, submissionUUID string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}

	key := constants.ResumeCacheKey(submissionUUID)
	if err := r.client.Set(ctx, key, jsonData, r.resultCacheDuration()).Err(); err != nil {
		return fmt.Errorf("写入解析结果缓存失败: %w", err)
	}
	return nil
}

// GetCachedResume 读取缓存的解析结果，未命中返回ErrNotFound
func (r *Redis) GetCachedResume(ctx context.Context, submissionUUID string) ([]byte, error) {
	data, err := r.client.Get(ctx, constants.ResumeCacheKey(submissionUUID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("读取解析结果缓存失败: %w", err)
	}
	return data, nil
}
