package parser

import (
	"regexp"
	"strings"

	"cv-parser-go/internal/types"
)

// 冒号结尾的短行，如 "Skills:" 这类行内标题
var colonHeadingRe = regexp.MustCompile(`^[A-Za-z][A-Za-z\s&/]{0,40}:$`)

// BuildDocument 从纯文本构建带块结构的文档
// 没有版面信息可用，只能靠文本形态推断：全大写短行和
// 冒号结尾的短行当标题，其余当正文。
func BuildDocument(rawText string) *types.Document {
	doc := &types.Document{
		RawText:  rawText,
		Metadata: map[string]string{},
	}

	for i, line := range strings.Split(rawText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		blockType := types.BlockText
		size := float64(types.BodyFontSize)
		if looksLikeHeading(trimmed) {
			blockType = types.BlockHeading
			size = float64(types.HeadingFontSize)
		}

		doc.Blocks = append(doc.Blocks, types.Block{
			Text:     trimmed,
			Type:     blockType,
			Position: map[string]interface{}{"line": i},
			Font:     types.FontInfo{Name: "", Size: size},
		})
	}
	return doc
}

// looksLikeHeading 文本形态上像标题的行
func looksLikeHeading(line string) bool {
	if len(line) > 60 {
		return false
	}
	if colonHeadingRe.MatchString(line) {
		return true
	}
	// 全大写且不含数字的短行，"EDUCATION" 这种
	if strings.ContainsAny(line, "0123456789") {
		return false
	}
	return isAllUpper(line)
}
