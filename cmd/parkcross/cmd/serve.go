package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"parkcross/internal/server"
	"parkcross/internal/util"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		port    int
		devMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 Web 服务（上传三个工作簿并下载交叉结果）",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, logger, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			// 命令行参数仅在配置文件未显式指定端口时生效
			if port > 0 && !info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if info.Path != "" {
				logger.Info().Str("path", info.Path).Msg("已加载配置文件")
			}

			srv := server.NewServer(cfg, logger)
			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Int("port", cfg.Server.Port).Msg("服务启动中")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			url := util.LocalURL(cfg.Server.Port)
			if !cfg.Server.DevMode && cfg.Server.OpenBrowser {
				if err := util.OpenBrowserWithFallback(url); err != nil {
					logger.Warn().Err(err).Str("url", url).Msg("无法自动打开浏览器，请手动访问")
				}
			} else {
				logger.Info().Str("url", url).Msg("请访问")
			}

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("服务启动失败: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			logger.Info().Msg("正在关闭服务")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	return cmd
}
