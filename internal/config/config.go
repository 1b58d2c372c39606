package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ErrCodeNotFound 表示通过 --config 显式指定的配置文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// FileName 是在工作目录下自动发现的配置文件名（可选）。
	FileName = "mdapi.json"
	// EnvPrefix 是环境变量前缀：MDAPI_BASE_URL、MDAPI_PROXY_URL ...
	EnvPrefix = "MDAPI"

	DefaultListen    = "127.0.0.1:5000"
	DefaultBaseURL   = "https://moviedrive.hu"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
	DefaultTimeout   = 20 // 秒
	DefaultLogLevel  = "info"
)

// FileConfig 对应 mdapi.json 的解析结构（环境变量与 CLI 参数使用同样的键）。
type FileConfig struct {
	Listen    string      `mapstructure:"listen"`
	BaseURL   string      `mapstructure:"base_url"`
	UserAgent string      `mapstructure:"user_agent"`
	Proxy     ProxyConfig `mapstructure:"proxy"`
	Timeout   int         `mapstructure:"timeout"`
	Log       LogConfig   `mapstructure:"log"`
}

type ProxyConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	Listen    string
	BaseURL   string
	UserAgent string
	ProxyURL  string
	Timeout   time.Duration
	LogLevel  string

	// File 是实际读取到的配置文件路径；未读取任何文件时为空。
	File string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// flagKeys 把 CLI 参数名映射到配置键。
var flagKeys = map[string]string{
	"listen":     "listen",
	"base-url":   "base_url",
	"user-agent": "user_agent",
	"proxy":      "proxy.url",
	"timeout":    "timeout",
	"log-level":  "log.level",
}

// RegisterFlags 在 fs 上注册可覆盖配置的 CLI 参数（默认值为空，由 Load 统一兜底）。
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("listen", "", "API 监听地址（默认 "+DefaultListen+"）")
	fs.String("base-url", "", "站点根地址（默认 "+DefaultBaseURL+"）")
	fs.String("user-agent", "", "抓取使用的固定 User-Agent")
	fs.String("proxy", "", "HTTP 代理地址")
	fs.Int("timeout", 0, "单次请求总超时（秒）")
	fs.String("log-level", "", "日志级别：debug|info|warn|error")
}

// Load 读取配置并按固定优先级合并：CLI 参数 > 环境变量 > 配置文件 > 内置默认值。
//
// 发现规则（固定）：
// 1) cfgFile 非空：必须存在，否则 config_not_found
// 2) cfgFile 为空：尝试读取 <cwd>/mdapi.json（可选）
func Load(cwd, cfgFile string, flags *pflag.FlagSet) (EffectiveConfig, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", DefaultListen)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy.url", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log.level", DefaultLogLevel)

	cfgPath := strings.TrimSpace(cfgFile)
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = filepath.Join(cwd, FileName)
	} else if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(cwd, cfgPath)
	}
	v.SetConfigFile(cfgPath)

	read := true
	if err := v.ReadInConfig(); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && explicit:
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: err}
		case errors.Is(err, fs.ErrNotExist):
			read = false
		default:
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
			}
		}
	}

	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	eff, err := normalize(fc)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if read {
		eff.File = cfgPath
	}
	return eff, nil
}

func normalize(fc FileConfig) (EffectiveConfig, error) {
	listen := strings.TrimSpace(fc.Listen)
	if listen == "" {
		listen = DefaultListen
	}

	baseURL := strings.TrimRight(strings.TrimSpace(fc.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return EffectiveConfig{}, fmt.Errorf("base_url 无效：%q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return EffectiveConfig{}, fmt.Errorf("base_url 必须是 http/https：%q", baseURL)
	}

	proxyURL := strings.TrimSpace(fc.Proxy.URL)
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, fmt.Errorf("proxy.url 无效：%w", err)
		}
	}

	ua := strings.TrimSpace(fc.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}

	// 超时范围 [1, 120] 秒；0 视为未设置，超出截断。
	timeout := fc.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < 1 {
		timeout = 1
	}
	if timeout > 120 {
		timeout = 120
	}

	level := strings.ToLower(strings.TrimSpace(fc.Log.Level))
	switch level {
	case "":
		level = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return EffectiveConfig{}, fmt.Errorf("log.level 只能是 debug|info|warn|error，实际是 %q", fc.Log.Level)
	}

	return EffectiveConfig{
		Listen:    listen,
		BaseURL:   baseURL,
		UserAgent: ua,
		ProxyURL:  proxyURL,
		Timeout:   time.Duration(timeout) * time.Second,
		LogLevel:  level,
	}, nil
}
