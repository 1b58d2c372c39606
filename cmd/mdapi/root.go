package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/mdapi/internal/config"
	"github.com/John-Robertt/mdapi/internal/infra/fsx"
	"github.com/John-Robertt/mdapi/internal/infra/logx"
)

// cli 持有一次命令执行期间共享的状态（配置在 PersistentPreRunE 中加载）。
type cli struct {
	cfgFile string
	cfg     config.EffectiveConfig
	logger  *log.Logger

	out   string
	force bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "mdapi",
		Short:         "moviedrive 目录抓取与 JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "配置文件路径（默认读取 ./"+config.FileName+"，不存在则忽略）")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd(c), newParseCmd(c), newFetchCmd(c))
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd, c.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logx.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	if cfg.File != "" {
		logger.Debug("已读取配置文件", "path", cfg.File)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.WithContext(ctx, logger))
	return nil
}

// addOutputFlags 给会输出 JSON 的命令加上 --out/--force。
func (c *cli) addOutputFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&c.out, "out", "o", "", "把 JSON 写入文件（默认输出到 stdout）")
	cmd.PersistentFlags().BoolVar(&c.force, "force", false, "--out 目标已存在时覆盖")
}

// emit 输出 JSON：stdout 只承载结果，日志一律走 stderr。
func (c *cli) emit(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if c.out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := fsx.WriteOutput(c.out, data, c.force); err != nil {
		return err
	}
	c.logger.Info("已写入", "path", c.out, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
