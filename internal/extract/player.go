package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoEpisodeParam 表示播放器 iframe 的地址里没有 ep= 参数。
var ErrNoEpisodeParam = errors.New("iframe 地址中没有 ep 参数")

var epParamRE = regexp.MustCompile(`ep=(\d+)`)

// TotalPages 读取分页器倒数第二项（最后一项是“下一页”箭头）。
func TotalPages(doc *goquery.Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	pager, ok := tryFind(doc.Selection, "ul.paginator")
	if !ok {
		return "", false
	}
	items := pager.Find("li")
	if items.Length() < 2 {
		return "", false
	}
	return strings.TrimSpace(items.Eq(items.Length() - 2).Text()), true
}

// PlayerIframeSrc 返回 iframe#player 的 src。
func PlayerIframeSrc(doc *goquery.Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	src, ok := tryAttr(doc.Selection, "iframe#player", "src")
	if !ok || src == "" {
		return "", false
	}
	return src, true
}

// SourceScript 返回第一个包含 player.source 的内联脚本文本（trim 后）。
func SourceScript(doc *goquery.Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	var (
		out string
		ok  bool
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := s.Text()
		if !strings.Contains(txt, "player.source") {
			return true
		}
		out, ok = strings.TrimSpace(txt), true
		return false
	})
	return out, ok
}

// EpisodeEmbedLink 把剧集页 iframe 地址改写为第 episode 集的播放地址。
//
// iframe 中的 ep 是本季第一集在站点上的全局编号；目标编号 = (ep-1) + episode。
func EpisodeEmbedLink(iframeSrc string, episode int) (string, error) {
	m := epParamRE.FindStringSubmatch(iframeSrc)
	if m == nil {
		return "", ErrNoEpisodeParam
	}
	first, err := strconv.Atoi(m[1])
	if err != nil {
		return "", err
	}
	target := first - 1 + episode
	return epParamRE.ReplaceAllString(iframeSrc, "ep="+strconv.Itoa(target)), nil
}
