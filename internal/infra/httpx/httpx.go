package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 20 * time.Second

	// DefaultUserAgent 是站点抓取固定使用的 UA（站点对非浏览器 UA 会返回精简页面）。
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
)

// Transport 在每个请求上补齐固定 UA，并按需关闭连接复用。
//
// 不做重试、不做缓存：site 层只负责“抓取 + 交给抽取器”，失败直接上抛。
type Transport struct {
	Base *http.Transport

	UserAgent string

	// DisableKeepAlives 为 true 时对每个请求设置 Close=true；
	// 连接池层面的禁用由 Base.DisableKeepAlives 负责。
	DisableKeepAlives bool
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		ua := t.UserAgent
		if ua == "" {
			ua = DefaultUserAgent
		}
		r.Header.Set("User-Agent", ua)
	}
	if t.DisableKeepAlives {
		r.Close = true
	}
	return t.Base.RoundTrip(r)
}

// Options 是构造抓取 client 的静态配置。
type Options struct {
	UserAgent string
	ProxyURL  string
	Timeout   time.Duration
}

// NewClient 构造用于站点页面抓取的 HTTP client。
//
// 规则：
// - UserAgent 为空：使用 DefaultUserAgent
// - ProxyURL 非空：必须走代理，且禁用 keep-alive（每请求新连接）
// - Timeout<=0：使用默认总超时
func NewClient(opts Options) (*http.Client, error) {
	base := &http.Transport{
		Proxy:                 nil,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}

	disableKeepAlives := false
	if proxyURL := strings.TrimSpace(opts.ProxyURL); proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		base.Proxy = http.ProxyURL(u)
		base.DisableKeepAlives = true
		disableKeepAlives = true
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Transport: &Transport{
			Base:              base,
			UserAgent:         strings.TrimSpace(opts.UserAgent),
			DisableKeepAlives: disableKeepAlives,
		},
		Timeout: timeout,
	}, nil
}
