package extract

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/John-Robertt/mdapi/internal/domain"
)

// 列表页中各区块的卡片选择器。
// 注意：带多个 class 的区块要求 class 属性完全一致（div.card 同样会匹配到它们）。
const (
	SelTodayPopular = `div[class="card card--big"]`
	SelWeekPopular  = `div[class="card card--list"]`
	SelCard         = `div.card`
)

// CardRule 控制卡片抽取时的可选字段。
type CardRule struct {
	IncludeDescription bool
	// IncludeViews=false 时，带观看数的卡片会被排除。
	// 站点的“新上传”区块没有观看计数，而同一页面其它区块的卡片有；
	// 这里沿用这一行为来过滤，它更像抓取上的变通而不是业务规则。
	IncludeViews bool
}

// DefaultCardRule：不要描述，保留有观看数的卡片。
var DefaultCardRule = CardRule{IncludeViews: true}

// ExtractCards 按文档顺序抽取每张卡片。
// 缺少类型标签的卡片会被跳过并记录 warning，不影响其它卡片。
func ExtractCards(ctx context.Context, cards *goquery.Selection, rule CardRule) []domain.CardRecord {
	logger := log.FromContext(ctx).WithPrefix("extract/card")

	out := make([]domain.CardRecord, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		rec, ok := extractCard(card, rule)
		if !ok {
			logger.Warn("卡片缺少类型标签，已跳过", "index", i)
			return
		}
		if !rule.IncludeViews && rec.Views != nil {
			return
		}
		out = append(out, rec)
	})
	return out
}

// ExtractCardsFrom 先用 selector 选出卡片，再调用 ExtractCards。
func ExtractCardsFrom(ctx context.Context, doc *goquery.Document, selector string, rule CardRule) []domain.CardRecord {
	if doc == nil {
		return []domain.CardRecord{}
	}
	return ExtractCards(ctx, doc.Find(selector), rule)
}

func extractCard(card *goquery.Selection, rule CardRule) (domain.CardRecord, bool) {
	typ, ok := tryFind(card, "span.card__type")
	if !ok {
		return domain.CardRecord{}, false
	}

	rec := domain.CardRecord{
		Type:     strings.TrimSpace(typ.Text()),
		Category: genreLinks(card),
	}

	if img, ok := tryFind(card, "img"); ok {
		rec.Poster, _ = img.Attr("src")
	}
	if h, ok := tryFind(card, "h3.card__title"); ok {
		if a, ok := tryFind(h, "a"); ok {
			rec.Title = strings.TrimSpace(a.Text())
		}
	}
	if rate, ok := tryFind(card, "span.card__rate"); ok {
		rec.Score, rec.Views = ParseRateViews(rate.Text())
	}

	if rule.IncludeDescription {
		desc := ""
		if block, ok := tryFind(card, "div.card__description"); ok {
			if p, ok := tryFind(block, "p"); ok {
				desc = strings.TrimSpace(p.Text())
			} else {
				desc = strings.TrimSpace(block.Text())
			}
		}
		rec.Description = &desc
	}
	return rec, true
}

// ParseRateViews 解析 "评分 观看数" 文本，例如 "8.2 5,000"。
// 第一段按浮点数解析为评分；第二段去掉千位分隔符后按整数解析为观看数。
// 两者互不影响：任一解析失败（含非有限数）只让对应字段为 nil。
func ParseRateViews(text string) (score *float64, views *int) {
	fields := strings.Fields(text)
	if len(fields) > 0 {
		// ParseFloat 接受 NaN/Inf，这类值不是有效评分，也无法编码为 JSON。
		if f, err := strconv.ParseFloat(fields[0], 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			score = &f
		}
	}
	if len(fields) > 1 {
		if n, err := strconv.Atoi(strings.ReplaceAll(fields[1], ",", "")); err == nil && n >= 0 {
			views = &n
		}
	}
	return score, views
}
