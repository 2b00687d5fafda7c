package ontology

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"cv-parser-go/internal/config"
	"cv-parser-go/internal/logger"
)

// Mapping 一类实体的本体：规范名 -> 变体列表
// 内部维护小写倒排索引，变体和规范名本身都指向规范名。
// 索引构建时按规范名排序遍历，同一变体被多个规范名声明时先到者得，
// 保证同一份本体文件在任何机器上产出同样的索引。
type Mapping struct {
	name      string
	canonical map[string][]string
	index     map[string]string // lower(term) -> canonical
	terms     []string          // 索引里全部小写词条，已排序
}

// NewMapping 从内存映射构建本体
func NewMapping(name string, data map[string][]string) *Mapping {
	m := &Mapping{
		name:      name,
		canonical: data,
		index:     make(map[string]string),
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, canon := range keys {
		lc := strings.ToLower(canon)
		if _, exists := m.index[lc]; !exists {
			m.index[lc] = canon
		}
		for _, variant := range data[canon] {
			lv := strings.ToLower(strings.TrimSpace(variant))
			if lv == "" {
				continue
			}
			if _, exists := m.index[lv]; !exists {
				m.index[lv] = canon
			}
		}
	}

	m.terms = make([]string, 0, len(m.index))
	for term := range m.index {
		m.terms = append(m.terms, term)
	}
	sort.Strings(m.terms)

	return m
}

// LoadMapping 从JSON文件加载本体，格式为 {"规范名": ["变体", ...]}
func LoadMapping(name, path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取本体文件失败 %s: %w", path, err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析本体文件失败 %s: %w", path, err)
	}
	return NewMapping(name, raw), nil
}

// Name 本体名称
func (m *Mapping) Name() string { return m.name }

// Empty 是否没有任何词条
func (m *Mapping) Empty() bool { return len(m.index) == 0 }

// Len 索引词条数
func (m *Mapping) Len() int { return len(m.index) }

// Canonical 精确查找：输入词（不区分大小写）对应的规范名
func (m *Mapping) Canonical(term string) (string, bool) {
	canon, ok := m.index[strings.ToLower(strings.TrimSpace(term))]
	return canon, ok
}

// Terms 索引中全部小写词条，排序稳定，供模糊匹配遍历
func (m *Mapping) Terms() []string {
	return m.terms
}

// Store 六类实体本体的集合
type Store struct {
	Skills       *Mapping
	Institutions *Mapping
	Degrees      *Mapping
	Fields       *Mapping
	Companies    *Mapping
	Titles       *Mapping
}

// NewStore 按配置目录加载全部本体
// 单个文件缺失或损坏只告警并用空本体顶替，不中断启动：
// 空本体意味着该类实体全部走清洗后原样输出的退路。
func NewStore(cfg config.NormalizerConfig) *Store {
	load := func(name string) *Mapping {
		path := cfg.OntologyPath(name)
		if path == "" {
			return NewMapping(name, nil)
		}
		m, err := LoadMapping(name, path)
		if err != nil {
			logger.Warn().Err(err).Str("ontology", name).Msg("本体加载失败，使用空本体")
			return NewMapping(name, nil)
		}
		logger.Info().Str("ontology", name).Int("terms", m.Len()).Msg("本体加载完成")
		return m
	}

	return &Store{
		Skills:       load("skills"),
		Institutions: load("institutions"),
		Degrees:      load("degrees"),
		Fields:       load("fields"),
		Companies:    load("companies"),
		Titles:       load("titles"),
	}
}

// NewStoreFromMaps 从内存数据构建Store，测试用
func NewStoreFromMaps(skills, institutions, degrees, fields, companies, titles map[string][]string) *Store {
	return &Store{
		Skills:       NewMapping("skills", skills),
		Institutions: NewMapping("institutions", institutions),
		Degrees:      NewMapping("degrees", degrees),
		Fields:       NewMapping("fields", fields),
		Companies:    NewMapping("companies", companies),
		Titles:       NewMapping("titles", titles),
	}
}

// Empty 全部本体都为空
func (s *Store) Empty() bool {
	return s.Skills.Empty() && s.Institutions.Empty() && s.Degrees.Empty() &&
		s.Fields.Empty() && s.Companies.Empty() && s.Titles.Empty()
}
