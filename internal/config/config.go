package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Address      string `yaml:"address"`        // 监听地址，如 ":8080"
	APIKey       string `yaml:"api_key"`        // 非空时启用keyauth鉴权
	RateLimitQPM int    `yaml:"rate_limit_qpm"` // 每分钟请求数上限，0表示不限流
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"` // json 或 pretty
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"` // OTLP gRPC采集端点
	SamplingRate float64 `yaml:"sampling_rate"` // 0~1
}

// MySQLConfig MySQL连接配置
type MySQLConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	User                   string `yaml:"user"`
	Password               string `yaml:"password"`
	Database               string `yaml:"database"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// DSN 生成GORM使用的数据源字符串
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	// MD5去重记录的过期时间(天)
	MD5RecordExpireDays int `yaml:"md5_record_expire_days"`
	// 解析结果缓存的过期时间(分钟)
	ResultCacheExpireMinutes int `yaml:"result_cache_expire_minutes"`
}

// RabbitMQConfig RabbitMQ连接配置
type RabbitMQConfig struct {
	URL             string `yaml:"url"`
	ConsumerWorkers int    `yaml:"consumer_workers"` // 解析消费者并发数
	PrefetchCount   int    `yaml:"prefetch_count"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	RawTextBucket   string `yaml:"raw_text_bucket"`   // 原始文档文本
	ResultBucket    string `yaml:"result_bucket"`     // 结构化结果JSON
}

// SectionRule 单个章节的识别规则
type SectionRule struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// SectionRuleSet 一套完整的章节识别规则
// 规则是数据而非代码：可按文档类型挑选不同版本的规则集，
// 调参不需要改动分类器本身。
// Sections 用有序列表而不是映射，平分时按声明顺序取先者。
type SectionRuleSet struct {
	Version             string        `yaml:"version"`
	DocumentType        string        `yaml:"document_type"` // 规则集适用的文档类型标签
	Sections            []SectionRule `yaml:"sections"`
	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	MinHeadingSize      float64       `yaml:"min_heading_size"`
}

// ParserConfig 章节分类配置
type ParserConfig struct {
	RulesFile string           `yaml:"rules_file"` // 外部规则文件，优先于内联规则
	RuleSets  []SectionRuleSet `yaml:"rule_sets"`
}

// RuleSetFor 按文档类型挑选规则集；找不到时退回第一套
func (p *ParserConfig) RuleSetFor(docType string) *SectionRuleSet {
	for i := range p.RuleSets {
		if p.RuleSets[i].DocumentType == docType {
			return &p.RuleSets[i]
		}
	}
	if len(p.RuleSets) > 0 {
		return &p.RuleSets[0]
	}
	return nil
}

// ThresholdConfig 各归一化器的模糊匹配阈值(0~100)
type ThresholdConfig struct {
	Skill       int `yaml:"skill"`
	Institution int `yaml:"institution"`
	Degree      int `yaml:"degree"`
	Field       int `yaml:"field"`
	Company     int `yaml:"company"`
	Title       int `yaml:"title"`
}

// NormalizerConfig 归一化配置
type NormalizerConfig struct {
	OntologyDir string          `yaml:"ontology_dir"` // 各本体JSON文件所在目录
	Thresholds  ThresholdConfig `yaml:"thresholds"`
	StopWords   []string        `yaml:"stop_words"` // 技能列表过滤用停用词
}

// Config 应用程序配置
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	Tracing    TracingConfig    `yaml:"tracing"`
	MySQL      MySQLConfig      `yaml:"mysql"`
	Redis      RedisConfig      `yaml:"redis"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	MinIO      MinIOConfig      `yaml:"minio"`
	Parser     ParserConfig     `yaml:"parser"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
}

// LoadConfig 加载配置文件
// 未指定路径时在常见位置查找；完全找不到时返回默认配置而非报错，
// 核心流水线必须在零外部文件的情况下也能工作。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".cv-parser", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"))
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", configPath, err)
	}

	// 外部规则文件优先于内联规则（相对路径基于配置文件目录解析）
	if cfg.Parser.RulesFile != "" {
		rulesPath := cfg.Parser.RulesFile
		if !filepath.IsAbs(rulesPath) {
			rulesPath = filepath.Join(filepath.Dir(configPath), rulesPath)
		}
		ruleSets, err := LoadSectionRules(rulesPath)
		if err != nil {
			// 规则文件坏了降级为已有规则，只告警不中断
			fmt.Fprintf(os.Stderr, "警告: 加载章节规则文件失败 %s: %v\n", rulesPath, err)
		} else {
			cfg.Parser.RuleSets = ruleSets
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadSectionRules 从独立的YAML文件加载规则集
func LoadSectionRules(path string) ([]SectionRuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		RuleSets []SectionRuleSet `yaml:"rule_sets"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.RuleSets) == 0 {
		return nil, fmt.Errorf("规则文件为空: %s", path)
	}
	return wrapper.RuleSets, nil
}

// DefaultConfig 返回带内置规则集与阈值的默认配置
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Parser: ParserConfig{
			RuleSets: []SectionRuleSet{DefaultSectionRuleSet()},
		},
	}
	applyDefaults(cfg)
	return cfg
}

// DefaultSectionRuleSet 内置的英文简历规则集
// 每个章节刻意只配两个模式：置信度=命中模式数/模式总数，
// 模式越多单个标题行的得分越被稀释。
func DefaultSectionRuleSet() SectionRuleSet {
	return SectionRuleSet{
		Version:      "1.0",
		DocumentType: "resume_en",
		Sections: []SectionRule{
			{Name: "contact", Patterns: []string{`contact`, `personal\s+details`}},
			{Name: "summary", Patterns: []string{`summary`, `profile|objective`}},
			{Name: "skills", Patterns: []string{`skills`, `technologies|competencies`}},
			{Name: "education", Patterns: []string{`education`, `qualifications|academic`}},
			{Name: "experience", Patterns: []string{`experience`, `work\s+history|employment`}},
			{Name: "projects", Patterns: []string{`projects`, `portfolio`}},
			{Name: "certifications", Patterns: []string{`certifications?`, `licenses?`}},
		},
		ConfidenceThreshold: 0.5,
		MinHeadingSize:      10,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "json"
	}
	if cfg.Tracing.SamplingRate <= 0 {
		cfg.Tracing.SamplingRate = 0.1
	}
	if cfg.MySQL.Port == 0 {
		cfg.MySQL.Port = 3306
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 5
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 50
	}
	if cfg.MySQL.ConnMaxLifetimeMinutes == 0 {
		cfg.MySQL.ConnMaxLifetimeMinutes = 60
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.MinIdleConns == 0 {
		cfg.Redis.MinIdleConns = 2
	}
	if cfg.Redis.DialTimeoutSeconds == 0 {
		cfg.Redis.DialTimeoutSeconds = 5
	}
	if cfg.Redis.ReadTimeoutSeconds == 0 {
		cfg.Redis.ReadTimeoutSeconds = 3
	}
	if cfg.Redis.WriteTimeoutSeconds == 0 {
		cfg.Redis.WriteTimeoutSeconds = 3
	}
	if cfg.Redis.MD5RecordExpireDays == 0 {
		cfg.Redis.MD5RecordExpireDays = 365
	}
	if cfg.Redis.ResultCacheExpireMinutes == 0 {
		cfg.Redis.ResultCacheExpireMinutes = 60
	}
	if cfg.RabbitMQ.ConsumerWorkers == 0 {
		cfg.RabbitMQ.ConsumerWorkers = 5
	}
	if cfg.RabbitMQ.PrefetchCount == 0 {
		cfg.RabbitMQ.PrefetchCount = 10
	}
	if cfg.MinIO.RawTextBucket == "" {
		cfg.MinIO.RawTextBucket = "raw-documents"
	}
	if cfg.MinIO.ResultBucket == "" {
		cfg.MinIO.ResultBucket = "parsed-resumes"
	}
	for i := range cfg.Parser.RuleSets {
		rs := &cfg.Parser.RuleSets[i]
		if rs.ConfidenceThreshold == 0 {
			rs.ConfidenceThreshold = 0.5
		}
		if rs.MinHeadingSize == 0 {
			rs.MinHeadingSize = 10
		}
	}
	th := &cfg.Normalizer.Thresholds
	if th.Skill == 0 {
		th.Skill = 90
	}
	if th.Institution == 0 {
		th.Institution = 85
	}
	if th.Degree == 0 {
		th.Degree = 85
	}
	if th.Field == 0 {
		th.Field = 85
	}
	if th.Company == 0 {
		th.Company = 85
	}
	if th.Title == 0 {
		th.Title = 90
	}
	if len(cfg.Normalizer.StopWords) == 0 {
		cfg.Normalizer.StopWords = []string{"and", "or", "etc", "with", "of", "in"}
	}
}

// OntologyPath 拼接某一本体文件的完整路径
func (n *NormalizerConfig) OntologyPath(name string) string {
	if n.OntologyDir == "" {
		return ""
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(n.OntologyDir, name)
}
