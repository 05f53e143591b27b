package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AnalysisConfig 分析参数配置
type AnalysisConfig struct {
	HeaderMatchThreshold int     `toml:"header_match_threshold"` // 表头定位最小关键词命中数
	FuzzyEnabled         bool    `toml:"fuzzy_enabled"`          // 是否启用模糊列名回退
	FuzzyCutoff          float64 `toml:"fuzzy_cutoff"`           // 模糊匹配最低相似度
	TrendWindows         []int   `toml:"trend_windows"`          // 趋势窗口天数
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20531,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Analysis: AnalysisConfig{
			HeaderMatchThreshold: 3,
			FuzzyEnabled:         true,
			FuzzyCutoff:          0.8,
			TrendWindows:         []int{7, 30, 90},
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置
// 文件不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("LEDGERLENS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, nil
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	// 上传临时文件目录
	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
