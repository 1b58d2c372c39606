// Package extract 把 moviedrive 的列表页/详情页 HTML 抽取为结构化记录。
//
// 约束：
// - 纯函数：输入是已抓取的文档，不做任何 I/O
// - 元素/字段缺失一律在本包内用默认值兜底，不向调用方返回错误
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tryFind 返回 s 下第一个匹配 selector 的元素；不存在时 ok=false。
// 每个字段只调用一次，然后各自决定默认值。
func tryFind(s *goquery.Selection, selector string) (*goquery.Selection, bool) {
	if s == nil {
		return nil, false
	}
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// tryAttr 返回第一个匹配元素的属性值（trim 后）。
func tryAttr(s *goquery.Selection, selector, attr string) (string, bool) {
	el, ok := tryFind(s, selector)
	if !ok {
		return "", false
	}
	v, ok := el.Attr(attr)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// genreLinks 收集所有 href 包含分类路径标记的链接文本。
func genreLinks(s *goquery.Selection) []string {
	out := []string{}
	if s == nil {
		return out
	}
	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.Contains(href, genreMarker) {
			out = append(out, strings.TrimSpace(a.Text()))
		}
	})
	return out
}

// genreMarker 是分类页链接中固定出现的路径片段。
const genreMarker = "genere"
