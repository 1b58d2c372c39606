package domain

// CardRecord 是列表页中一张“卡片”（电影/剧集摘要）的结构化结果。
//
// 约束：
// - 所有键在 JSON 中都必须出现；可选字段缺失时输出 null（下游依赖稳定的结构）
// - Score 与 Views 来自同一段 "评分 观看数" 文本，但各自独立解析，任一失败只影响自己
// - Category 永远不是 null（没有分类时为空数组）
type CardRecord struct {
	Type     string   `json:"type"`
	Poster   string   `json:"poster"`
	Title    string   `json:"title"`
	Category []string `json:"category"`

	Score *float64 `json:"score"`
	Views *int     `json:"views"`

	// Description 只有在抽取规则要求时才会被填充；要求了但页面没有描述块时为 ""。
	Description *string `json:"description"`
}
