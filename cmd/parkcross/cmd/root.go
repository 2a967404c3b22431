// Package cmd parkcross 命令行
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"parkcross/internal/config"
	"parkcross/internal/logging"
)

// rootOptions 全局参数
type rootOptions struct {
	configFile string
	logLevel   string
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "parkcross",
		Short: "PQR / CARTERA / PARQ_ASIGNADOS 车位交叉工具",
		Long: `parkcross 读取三个 Excel 工作簿（车位申请、账务、车位分配），
按 Sheet + Codigo 与 Codigo + 车牌 + Sheet 关联，输出带 Asignar_Park 判定的结果表。`,
		Version:      config.Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "配置文件路径 (默认程序目录下 config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 debug/info/warn/error (覆盖配置文件)")

	root.AddCommand(newServeCommand(opts), newCrossCommand(opts), newInitConfigCommand(opts))
	return root
}

// Execute 执行根命令，SIGINT/SIGTERM 取消 context
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig 读取配置并创建 logger
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.AppConfig, config.LoadConfigInfo, zerolog.Logger, error) {
	cfg, info, err := config.LoadConfigWithInfo(o.configPath())
	if err != nil {
		return nil, info, zerolog.Nop(), err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, info, logger, nil
}

func (o *rootOptions) configPath() string {
	if o.configFile != "" {
		return o.configFile
	}
	return config.DefaultPath()
}
