package domain

import (
	"fmt"
	"strings"
)

// Kind 区分详情页的类型：电影或剧集。
type Kind int

const (
	KindMovie Kind = iota
	KindSeries
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind 解析 "movie"/"series"（大小写不敏感）。
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return KindMovie, nil
	case "series", "sorozat":
		return KindSeries, nil
	default:
		return 0, fmt.Errorf("kind 只能是 movie 或 series，实际是 %q", s)
	}
}
