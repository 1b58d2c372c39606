package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/mdapi/internal/domain"
)

const (
	selDetailTitle = "h1.details__title"
	// 电影与剧集详情页使用同一个卡片容器。
	selDetailCard   = `div[class="card card--details card--series"]`
	selSeasonParent = "div.evad-parent"
	selEpisodeCell  = `div[class="col-12 col-lg-3 col-md-4 mt-2"]`
)

// ExtractDetail 抽取单个作品详情页。
//
// 详情卡片容器缺失时只填 title，其余字段保持默认值；不会返回错误。
func ExtractDetail(doc *goquery.Document, kind domain.Kind) domain.DetailRecord {
	d := domain.NewDetailRecord(kind)
	if doc == nil {
		return d
	}
	root := doc.Selection

	if h, ok := tryFind(root, selDetailTitle); ok {
		if t := strings.TrimSpace(h.Text()); t != "" {
			d.Title = t
		}
	}

	if card, ok := tryFind(root, selDetailCard); ok {
		fillDetailCard(&d, card)
	}

	if d.SeriesFields != nil {
		d.SeasonLabels = seasonLabels(root)
		d.EpisodeNames = episodeNames(root)
	}
	return d
}

func fillDetailCard(d *domain.DetailRecord, card *goquery.Selection) {
	if cover, ok := tryFind(card, "div.card__cover"); ok {
		if src, ok := tryAttr(cover, "img", "src"); ok {
			d.Poster = src
		}
	}
	if rate, ok := tryFind(card, "span.card__rate"); ok {
		d.Rating = strings.TrimSpace(rate.Text())
	}

	d.Category = genreLinks(card)

	card.Find("li").Each(func(_ int, li *goquery.Selection) {
		label, value, ok := splitListItem(li.Text())
		if !ok {
			return
		}
		f, ok := LookupLabel(label)
		if !ok || f == FieldSkip {
			return
		}
		f.apply(d, value)
	})

	if desc, ok := tryFind(card, "div.card__description"); ok {
		d.Description = strings.TrimSpace(desc.Text())
	}
}

func seasonLabels(root *goquery.Selection) []string {
	out := []string{}
	parent, ok := tryFind(root, selSeasonParent)
	if !ok {
		return out
	}
	parent.Find("span").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func episodeNames(root *goquery.Selection) []string {
	out := []string{}
	root.Find(selEpisodeCell).Each(func(_ int, cell *goquery.Selection) {
		btn, ok := tryFind(cell, "button")
		if !ok {
			return
		}
		if label, ok := tryFind(btn, "span"); ok {
			out = append(out, strings.TrimSpace(label.Text()))
		}
	})
	return out
}
