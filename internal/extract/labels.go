package extract

import (
	"strings"

	"github.com/John-Robertt/mdapi/internal/domain"
)

// Field 是详情页元数据列表中可识别的字段。
type Field int

const (
	FieldSkip Field = iota // 已由 category 覆盖的分类标签
	FieldRelease
	FieldLength
	FieldCountry
	FieldViews
)

// FieldLabelMap 把规范化后的标签（trim + 小写）映射到 DetailRecord 字段。
// 未出现在表中的标签直接忽略。
var FieldLabelMap = map[string]Field{
	"műfaj":              FieldSkip,
	"kiadás év":          FieldRelease,
	"hossz":              FieldLength,
	"ország":             FieldCountry,
	"összes megtekintés": FieldViews,
}

// LookupLabel 规范化标签并查表。
func LookupLabel(label string) (Field, bool) {
	f, ok := FieldLabelMap[strings.ToLower(strings.TrimSpace(label))]
	return f, ok
}

// splitListItem 按 ':' 切分元数据条目；只有恰好两段时才有效。
// 没有冒号或有多个冒号的条目视为格式错误，直接跳过。
func splitListItem(text string) (label, value string, ok bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

func (f Field) apply(d *domain.DetailRecord, value string) {
	v := value
	switch f {
	case FieldRelease:
		d.Release = &v
	case FieldLength:
		d.Length = &v
	case FieldCountry:
		d.Country = &v
	case FieldViews:
		d.Views = &v
	}
}
