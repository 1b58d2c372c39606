package domain

// 以下是请求层对外输出的页面结构（JSON 键名与既有 API 保持一致）。

type HomePage struct {
	TodayPopular []CardRecord `json:"todaypopular"`
	WeekPopular  []CardRecord `json:"weekpopular"`
	NewUploads   []CardRecord `json:"newuploads"`
}

type SearchPage struct {
	SearchResults []CardRecord `json:"searchResults"`
}

type MoviesPage struct {
	CurrentPage string       `json:"currentPage"`
	TotalPages  string       `json:"totalPages"`
	Movies      []CardRecord `json:"movies"`
}

type FilmPage struct {
	DetailRecord
	VideoSources []VideoSource `json:"video_sources"`
}

// SeriesPage 只有在请求了具体的季和集时才会带上播放信息；否则两个字段为 null。
type SeriesPage struct {
	DetailRecord
	EpisodeEmbedLink *string       `json:"episode_embed_link"`
	VideoSources     []VideoSource `json:"video_sources"`
}
