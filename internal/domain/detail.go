package domain

const (
	// Unknown 是详情页中文本字段缺失时的默认值。
	Unknown = "Unknown"
	// AllSeasons 表示请求没有指定季（current_season 的哨兵值）。
	AllSeasons = "All seasons"
)

// DetailRecord 是单个作品详情页（电影或剧集）的结构化结果。
//
// 约束：
// - 任何子元素缺失都用默认值兜底（"Unknown" / "" / 空数组 / null），不向上抛错
// - Release/Length/Country/Views 来自带标签的元数据列表，原样保留站点文本
// - SeriesFields 仅在剧集时非 nil；电影的 JSON 中不出现剧集字段
type DetailRecord struct {
	Title       string   `json:"title"`
	Poster      string   `json:"poster"`
	Rating      string   `json:"rating"`
	Category    []string `json:"category"`
	Release     *string  `json:"release"`
	Length      *string  `json:"length"`
	Country     *string  `json:"country"`
	Views       *string  `json:"views"`
	Description string   `json:"description"`

	*SeriesFields
}

// SeriesFields 是剧集详情页额外携带的季/集信息。
type SeriesFields struct {
	CurrentSeason string   `json:"current_season"`
	SeasonLabels  []string `json:"seasonLabels"`
	EpisodeNames  []string `json:"episodeNames"`
}

// NewDetailRecord 返回所有字段都处于默认值的记录。
func NewDetailRecord(kind Kind) DetailRecord {
	d := DetailRecord{
		Title:       Unknown,
		Rating:      Unknown,
		Category:    []string{},
		Description: Unknown,
	}
	if kind == KindSeries {
		d.SeriesFields = &SeriesFields{
			CurrentSeason: AllSeasons,
			SeasonLabels:  []string{},
			EpisodeNames:  []string{},
		}
	}
	return d
}
