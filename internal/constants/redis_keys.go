package constants

import "fmt"

// Redis键定义，全部集中在这里避免散落各处拼写不一致

const (
	// RawTextMD5SetKey 已见过的原始文本MD5集合，用于内容级去重
	RawTextMD5SetKey = "cv_parser:raw_text_md5_set"

	// ResumeCachePrefix 解析结果缓存键前缀
	ResumeCachePrefix = "cv_parser:resume:"
)

// ResumeCacheKey 某次提交的解析结果缓存键
func ResumeCacheKey(submissionUUID string) string {
	return fmt.Sprintf("%s%s", ResumeCachePrefix, submissionUUID)
}
