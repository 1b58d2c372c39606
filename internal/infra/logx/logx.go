// Package logx 构造带 "mdapi" 前缀的 charmbracelet logger。
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New 按级别名（debug/info/warn/error）构造 logger；w 为 nil 时写 stderr。
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := log.InfoLevel
	if s := strings.TrimSpace(level); s != "" {
		var err error
		lvl, err = log.ParseLevel(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q：%w", level, err)
		}
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "mdapi",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		ReportCaller:    lvl == log.DebugLevel,
	})
	return logger, nil
}
