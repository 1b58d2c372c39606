// Package site 是 moviedrive 的请求层：抓取页面，再把文档交给 extract / sourcelit。
//
// 约束：
// - 不做缓存、不做重试（失败直接返回 *Error）
// - 抽取本身不会失败；只有网络/状态码与播放源解析会产生错误
package site

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/John-Robertt/mdapi/internal/domain"
	"github.com/John-Robertt/mdapi/internal/extract"
	"github.com/John-Robertt/mdapi/internal/sourcelit"
)

// DefaultBaseURL 是站点默认根地址。
const DefaultBaseURL = "https://moviedrive.hu"

// totalPagesProbe 是用来读取总页数的“越界”页码：站点会返回最后一页及完整分页器。
const totalPagesProbe = "1000"

type Client struct {
	// BaseURL 为空时使用 DefaultBaseURL。
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, c *http.Client) *Client {
	return &Client{BaseURL: baseURL, HTTP: c}
}

func (c *Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

// Home 抓取首页的三个区块：今日热门、本周热门（带描述）、新上传（排除有观看数的卡片）。
func (c *Client) Home(ctx context.Context) (domain.HomePage, error) {
	doc, err := c.fetch(ctx, "home", c.baseURL()+"/kezdolap/")
	if err != nil {
		return domain.HomePage{}, err
	}
	return domain.HomePage{
		TodayPopular: extract.ExtractCardsFrom(ctx, doc, extract.SelTodayPopular, extract.DefaultCardRule),
		WeekPopular:  extract.ExtractCardsFrom(ctx, doc, extract.SelWeekPopular, extract.CardRule{IncludeDescription: true, IncludeViews: true}),
		NewUploads:   extract.ExtractCardsFrom(ctx, doc, extract.SelCard, extract.CardRule{IncludeViews: false}),
	}, nil
}

// Search 按关键词搜索。
func (c *Client) Search(ctx context.Context, query string) (domain.SearchPage, error) {
	doc, err := c.fetch(ctx, "search", c.baseURL()+"/filmek/?q="+url.QueryEscape(query))
	if err != nil {
		return domain.SearchPage{}, err
	}
	return domain.SearchPage{
		SearchResults: extract.ExtractCardsFrom(ctx, doc, extract.SelCard, extract.DefaultCardRule),
	}, nil
}

// Movies 返回第 page 页的作品列表以及总页数（读不到分页器时为 "Unknown"）。
func (c *Client) Movies(ctx context.Context, page string) (domain.MoviesPage, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		page = "1"
	}
	doc, err := c.fetch(ctx, "movies", c.moviesURL(page))
	if err != nil {
		return domain.MoviesPage{}, err
	}
	movies := extract.ExtractCardsFrom(ctx, doc, extract.SelCard, extract.DefaultCardRule)

	total, err := c.TotalPages(ctx)
	if err != nil {
		return domain.MoviesPage{}, err
	}
	return domain.MoviesPage{CurrentPage: page, TotalPages: total, Movies: movies}, nil
}

// TotalPages 读取作品列表的总页数。
func (c *Client) TotalPages(ctx context.Context) (string, error) {
	doc, err := c.fetch(ctx, "movies", c.moviesURL(totalPagesProbe))
	if err != nil {
		return "", err
	}
	if n, ok := extract.TotalPages(doc); ok {
		return n, nil
	}
	return domain.Unknown, nil
}

func (c *Client) moviesURL(page string) string {
	return c.baseURL() + "/filmek/?p=" + url.QueryEscape(page)
}

// Film 抓取电影详情与播放源。
// 播放页定位不到 player.source 或修复失败都视为错误（此时无法给出任何可播放的结果）。
func (c *Client) Film(ctx context.Context, id string) (domain.FilmPage, error) {
	const op = "film"
	q := url.QueryEscape(strings.TrimSpace(id))

	sources, err := c.videoSources(ctx, op, c.baseURL()+"/embed/?id="+q)
	if err != nil {
		return domain.FilmPage{}, err
	}

	doc, err := c.fetch(ctx, op, c.baseURL()+"/film/?id="+q)
	if err != nil {
		return domain.FilmPage{}, err
	}
	return domain.FilmPage{
		DetailRecord: extract.ExtractDetail(doc, domain.KindMovie),
		VideoSources: sources,
	}, nil
}

// SeriesQuery 描述一次剧集请求。Season 为空表示全部季；Episode<=0 表示不请求播放。
type SeriesQuery struct {
	ID      string
	Season  string
	Episode int
}

// Series 抓取剧集详情；同时给出季和集时，额外解析该集的播放地址与播放源。
func (c *Client) Series(ctx context.Context, sq SeriesQuery) (domain.SeriesPage, error) {
	const op = "series"
	logger := log.FromContext(ctx).WithPrefix("site")

	seriesURL := c.baseURL() + "/sorozat/?id=" + url.QueryEscape(strings.TrimSpace(sq.ID))
	season := strings.TrimSpace(sq.Season)
	if season != "" {
		seriesURL += "&evad=" + url.QueryEscape(season)
	}

	doc, err := c.fetch(ctx, op, seriesURL)
	if err != nil {
		return domain.SeriesPage{}, err
	}
	page := domain.SeriesPage{DetailRecord: extract.ExtractDetail(doc, domain.KindSeries)}
	if season != "" {
		page.CurrentSeason = season
	}

	if season == "" || sq.Episode <= 0 {
		return page, nil
	}

	epDoc, err := c.fetch(ctx, op, seriesURL+"&ep="+strconv.Itoa(sq.Episode))
	if err != nil {
		return domain.SeriesPage{}, err
	}
	src, ok := extract.PlayerIframeSrc(epDoc)
	if !ok {
		logger.Warn("剧集页没有播放器 iframe", "id", sq.ID, "season", season, "episode", sq.Episode)
		return page, nil
	}
	link, err := extract.EpisodeEmbedLink(resolveURL(c.baseURL()+"/", src), sq.Episode)
	if err != nil {
		logger.Warn("无法从 iframe 推算集数", "src", src, "err", err)
		return page, nil
	}

	sources, err := c.videoSources(ctx, op, link)
	if err != nil {
		return domain.SeriesPage{}, err
	}
	page.EpisodeEmbedLink = &link
	page.VideoSources = sources
	return page, nil
}

func (c *Client) videoSources(ctx context.Context, op, embedURL string) ([]domain.VideoSource, error) {
	doc, err := c.fetch(ctx, op, embedURL)
	if err != nil {
		return nil, err
	}
	script, ok := extract.SourceScript(doc)
	if !ok {
		return nil, &Error{Op: op, Stage: StageParse, Err: errors.Wrapf(sourcelit.ErrNotFound, "embed %s", embedURL)}
	}
	sources, err := sourcelit.ParseVideoSources(script)
	if err != nil {
		return nil, &Error{Op: op, Stage: StageParse, Err: errors.Wrapf(err, "embed %s", embedURL)}
	}
	return sources, nil
}

func (c *Client) fetch(ctx context.Context, op, u string) (*goquery.Document, error) {
	if c.HTTP == nil {
		return nil, &Error{Op: op, Stage: StageFetch, Err: errors.New("http client 不能为空")}
	}
	logger := log.FromContext(ctx).WithPrefix("site")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Op: op, Stage: StageFetch, Err: errors.Wrap(err, "构造请求失败")}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Stage: StageFetch, Err: errors.Wrapf(err, "GET %s", u)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Op: op, Stage: StageFetch, Err: &HTTPStatusError{URL: u, StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Stage: StageFetch, Err: errors.Wrapf(err, "读取 %s 失败", u)}
	}
	logger.Debug("GET", "url", u, "status", resp.StatusCode, "size", humanize.Bytes(uint64(len(body))))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Op: op, Stage: StageFetch, Err: errors.Wrapf(err, "解析 %s 失败", u)}
	}
	return doc, nil
}

func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	bu, err := url.Parse(base)
	if err != nil {
		return href
	}
	ru, err := url.Parse(href)
	if err != nil {
		return href
	}
	return bu.ResolveReference(ru).String()
}
