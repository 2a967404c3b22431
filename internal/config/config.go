package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"parkcross/internal/model"
)

// EnvPrefix 环境变量前缀，如 PARKCROSS_SERVER_PORT
const EnvPrefix = "PARKCROSS"

// FileName 默认配置文件名
const FileName = "config.toml"

// Version 构建版本，通过 -ldflags "-X parkcross/internal/config.Version=..." 注入
var Version = "dev"

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server" envconfig:"server"`
	Upload   UploadConfig   `toml:"upload" envconfig:"upload"`
	Crossing CrossingConfig `toml:"crossing" envconfig:"crossing"`
	Export   ExportConfig   `toml:"export" envconfig:"export"`
	Log      LogConfig      `toml:"log" envconfig:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port" envconfig:"port" validate:"gte=1,lte=65535"`
	DevMode     bool `toml:"dev_mode" envconfig:"dev_mode"`
	OpenBrowser bool `toml:"open_browser" envconfig:"open_browser"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxFileSizeMB int `toml:"max_file_size_mb" envconfig:"max_file_size_mb" validate:"gte=1,lte=1024"`
	RatePerMinute int `toml:"rate_per_minute" envconfig:"rate_per_minute" validate:"gte=0"` // 0 不限流
}

// CrossingConfig 交叉规则配置
type CrossingConfig struct {
	AcceptedStatuses []string `toml:"accepted_statuses" envconfig:"accepted_statuses" validate:"min=1,dive,required"`
	PreviewRows      int      `toml:"preview_rows" envconfig:"preview_rows" validate:"gte=0,lte=1000"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	FileName           string `toml:"file_name" envconfig:"file_name" validate:"required,endswith=.xlsx"`
	SheetName          string `toml:"sheet_name" envconfig:"sheet_name" validate:"required,max=31"`
	DownloadTTLMinutes int    `toml:"download_ttl_minutes" envconfig:"download_ttl_minutes" validate:"gte=1"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level" envconfig:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `toml:"format" envconfig:"format" validate:"omitempty,oneof=auto console json"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string // 实际读取的配置文件，未找到时为空
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        8501,
			DevMode:     false,
			OpenBrowser: true,
		},
		Upload: UploadConfig{
			MaxFileSizeMB: 20,
			RatePerMinute: 30,
		},
		Crossing: CrossingConfig{
			AcceptedStatuses: append([]string(nil), model.DefaultAcceptedStatuses...),
			PreviewRows:      20,
		},
		Export: ExportConfig{
			FileName:           "dfpqr_filtered.xlsx",
			SheetName:          "Sheet1",
			DownloadTTLMinutes: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// MaxUploadBytes 单个上传文件大小上限
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxFileSizeMB) * 1024 * 1024
}

// DownloadTTL 下载链接有效期
func (c *AppConfig) DownloadTTL() time.Duration {
	return time.Duration(c.Export.DownloadTTLMinutes) * time.Minute
}

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo 加载配置：默认值 → config.toml → 环境变量，最后校验
// path 为空时读取可执行文件同目录下的 config.toml；文件不存在时使用默认配置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Path = path
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// 环境变量覆盖（容器 / 本地运行），.env 不覆盖已存在的变量
	loadEnvFiles(filepath.Dir(path))
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, info, fmt.Errorf("failed to apply environment: %w", err)
	}
	if os.Getenv(EnvPrefix+"_SERVER_PORT") != "" {
		info.PortSpecified = true
	}

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// loadEnvFiles 依次加载配置目录与当前目录下的 .env
func loadEnvFiles(dir string) {
	for _, name := range []string{filepath.Join(dir, ".env"), ".env"} {
		_ = godotenv.Load(name)
	}
}

// LoadConfig 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// SaveConfig 保存配置到 path（为空时为可执行文件同目录）
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
