package site

import (
	"fmt"
	"strings"
)

// HTTPStatusError 表示站点返回了非 2xx 的 HTTP 状态码。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Location   string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	loc := strings.TrimSpace(e.Location)
	if loc == "" {
		return fmt.Sprintf("HTTP %d url=%s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("HTTP %d url=%s location=%s", e.StatusCode, e.URL, loc)
}

// Error 是请求层的可追溯错误。
// 上层可以据此把失败归类为 fetch（网络/状态码）或 parse（页面结构/播放源）。
type Error struct {
	Op    string // "home" / "search" / "movies" / "film" / "series"
	Stage string // "fetch" 或 "parse"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("site op=%s stage=%s: %v", e.Op, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

const (
	StageFetch = "fetch"
	StageParse = "parse"
)
