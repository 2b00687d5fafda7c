package normalizer

import (
	"math"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"cv-parser-go/internal/ontology"
)

// matchCanonical 在本体里解析词条：先精确查找，再全索引模糊匹配
// 得分达到阈值(含)才接受。索引词条是排序过的，同分时取排序靠前者，
// 保证同样输入永远给出同样答案。
func matchCanonical(m *ontology.Mapping, term string, threshold int) (string, bool) {
	cleaned := strings.TrimSpace(term)
	if cleaned == "" || m.Empty() {
		return "", false
	}

	if canon, ok := m.Canonical(cleaned); ok {
		return canon, true
	}

	bestScore := -1
	bestTerm := ""
	for _, cand := range m.Terms() {
		score := fuzzyScore(cleaned, cand)
		if score > bestScore {
			bestScore = score
			bestTerm = cand
		}
	}

	if bestScore >= threshold {
		if canon, ok := m.Canonical(bestTerm); ok {
			return canon, true
		}
	}
	return "", false
}

// fuzzyScore 计算两个词条的加权相似度
// 长度接近时取全串比率和词序无关比率，长度悬殊时取子串包含类比率，
// 缩放系数与WRatio保持一致，但刻意不算token-set系比率：
// 那条路径会给只共享一个 "of" 之类虚词的词条打出86分，
// 足以越过学位阈值把两个毫不相干的学位并到一起。
func fuzzyScore(a, b string) int {
	c1 := fuzzy.Cleanse(a, true)
	c2 := fuzzy.Cleanse(b, true)
	if len(c1) == 0 || len(c2) == 0 {
		return 0
	}

	best := fuzzy.Ratio(c1, c2)

	lengthRatio := float64(len(c1)) / float64(len(c2))
	if lengthRatio < 1 {
		lengthRatio = 1 / lengthRatio
	}

	if lengthRatio < 1.5 {
		if s := scaled(fuzzy.TokenSortRatio(c1, c2), 0.95); s > best {
			best = s
		}
		return best
	}

	partialScale := 0.9
	if lengthRatio > 8 {
		partialScale = 0.6
	}
	if s := scaled(fuzzy.PartialRatio(c1, c2), partialScale); s > best {
		best = s
	}
	if s := scaled(fuzzy.PartialTokenSortRatio(c1, c2), 0.95*partialScale); s > best {
		best = s
	}
	return best
}

func scaled(score int, factor float64) int {
	return int(math.Round(float64(score) * factor))
}
