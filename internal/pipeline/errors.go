package pipeline

import "errors"

// 定义基础错误类型
var (
	// ErrNoUsableConfig 规则集和本体全部不可用，流水线没法工作
	ErrNoUsableConfig = errors.New("没有可用的章节规则和本体配置")
)
