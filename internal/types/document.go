package types

// BlockType 表示文本块的类型
type BlockType string

const (
	// BlockText 普通正文块
	BlockText BlockType = "text"
	// BlockHeading 标题块
	BlockHeading BlockType = "heading"
	// BlockTable 表格块
	BlockTable BlockType = "table"
)

// 由纯文本推断块结构时使用的名义字号
const (
	HeadingFontSize = 14
	BodyFontSize    = 11
)

// FontInfo 块的字体信息，来自上游布局分析
type FontInfo struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// Block 文档中的一个文本块
// Position 是上游提取器给出的不透明位置元数据，本模块只透传不解释
type Block struct {
	Text     string                 `json:"text"`
	Type     BlockType              `json:"type"`
	Position map[string]interface{} `json:"position,omitempty"`
	Font     FontInfo               `json:"font"`
}

// Document 待结构化的文档，由上游提取器（PDF/OCR等）产出
// 整个流水线处理期间不可变
type Document struct {
	RawText  string            `json:"raw_text"`
	Blocks   []Block           `json:"blocks,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Section 分类得到的语义章节
// 在一次分类过程中内容只追加，不会被部分覆盖
type Section struct {
	Name     string                 // 章节标识，如 education / experience
	Content  string                 // 拼接后的原始行内容
	Blocks   []Block                // 归属于该章节的块
	Position map[string]interface{} // 第一个块的位置元数据
}

// DefaultSectionName 规则集为空时所有内容落入的默认章节
const DefaultSectionName = "content"
