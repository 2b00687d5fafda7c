package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
	"cv-parser-go/internal/pipeline"
)

// cvcli 命令行工具：读取纯文本简历文件，输出结构化JSON
func main() {
	var (
		inputPath  string
		outputPath string
		configPath string
		verbose    bool
	)
	pflag.StringVarP(&inputPath, "file", "f", "", "输入的纯文本简历文件")
	pflag.StringVarP(&outputPath, "output", "o", "", "输出JSON文件路径, 默认输出到stdout")
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	pflag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "用法: cvcli -f resume.txt [-o result.json] [-c config.yaml]")
		os.Exit(2)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: "pretty"})

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化解析流水线失败")
	}

	rawText, err := os.ReadFile(inputPath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", inputPath).Msg("读取输入文件失败")
	}

	resume := p.ProcessText(context.Background(), string(rawText))

	out, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("序列化结果失败")
	}

	if outputPath == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		logger.Fatal().Err(err).Str("file", outputPath).Msg("写输出文件失败")
	}
	logger.Info().Str("file", outputPath).Msg("解析结果已写入")
}
