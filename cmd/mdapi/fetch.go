package main

import (
	"github.com/spf13/cobra"

	"github.com/John-Robertt/mdapi/internal/site"
)

// fetch 子命令直接请求站点，输出与 API 相同的 JSON。
func newFetchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "请求站点并输出 JSON",
	}
	c.addOutputFlags(cmd)

	home := &cobra.Command{
		Use:   "home",
		Short: "首页三个区块",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			page, err := sc.Home(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(cmd, page)
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "按关键词搜索",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			page, err := sc.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, page)
		},
	}

	movies := &cobra.Command{
		Use:   "movies [page]",
		Short: "作品列表（默认第 1 页）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			p := ""
			if len(args) == 1 {
				p = args[0]
			}
			page, err := sc.Movies(cmd.Context(), p)
			if err != nil {
				return err
			}
			return c.emit(cmd, page)
		},
	}

	film := &cobra.Command{
		Use:   "film <id>",
		Short: "电影详情与播放源",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			page, err := sc.Film(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, page)
		},
	}

	var sq site.SeriesQuery
	series := &cobra.Command{
		Use:   "series <id>",
		Short: "剧集详情；同时给出 --season 与 --episode 时带上该集播放源",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := c.siteClient()
			if err != nil {
				return err
			}
			sq.ID = args[0]
			page, err := sc.Series(cmd.Context(), sq)
			if err != nil {
				return err
			}
			return c.emit(cmd, page)
		},
	}
	series.Flags().StringVar(&sq.Season, "season", "", "季（evad）")
	series.Flags().IntVar(&sq.Episode, "episode", 0, "集（从 1 开始）")

	cmd.AddCommand(home, search, movies, film, series)
	return cmd
}
