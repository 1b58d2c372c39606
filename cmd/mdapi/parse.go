package main

import (
	"bytes"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/mdapi/internal/domain"
	"github.com/John-Robertt/mdapi/internal/extract"
	"github.com/John-Robertt/mdapi/internal/sourcelit"
)

// parse 子命令只处理本地文件，不访问网络。
func newParseCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "解析本地保存的页面",
	}
	c.addOutputFlags(cmd)
	cmd.AddCommand(newParseCardsCmd(c), newParseDetailCmd(c), newParseSourcesCmd(c))
	return cmd
}

func newParseCardsCmd(c *cli) *cobra.Command {
	var (
		selector string
		rule     extract.CardRule
	)
	cmd := &cobra.Command{
		Use:   "cards <file>",
		Short: "抽取列表页卡片",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, extract.ExtractCardsFrom(cmd.Context(), doc, selector, rule))
		},
	}
	cmd.Flags().StringVar(&selector, "selector", extract.SelCard, "卡片选择器")
	cmd.Flags().BoolVar(&rule.IncludeDescription, "description", false, "抽取卡片描述")
	cmd.Flags().BoolVar(&rule.IncludeViews, "views", true, "保留带观看数的卡片（false 时排除）")
	return cmd
}

func newParseDetailCmd(c *cli) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "detail <file>",
		Short: "抽取详情页",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := domain.ParseKind(kind)
			if err != nil {
				return err
			}
			doc, _, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, extract.ExtractDetail(doc, k))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", domain.KindMovie.String(), "详情类型：movie|series")
	return cmd
}

func newParseSourcesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sources <file>",
		Short: "从播放页（或单独的脚本文件）恢复视频源列表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, raw, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			script, ok := extract.SourceScript(doc)
			if !ok {
				// 不是 HTML 时按纯脚本处理。
				script = string(raw)
			}
			sources, err := sourcelit.ParseVideoSources(script)
			if err != nil {
				return err
			}
			return c.emit(cmd, sources)
		},
	}
}

func loadDocument(path string) (*goquery.Document, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}
