// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 环境变量 - UPDATE_VOLUME_* 前缀
//  3. CLI flags - 最高优先级
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "UPDATE_VOLUME_"

// Config update-volume 运行配置
type Config struct {
	Asoundrc string `env:"ASOUNDRC" comment:"ALSA 配置文件路径，支持 '~' 开头"`
	Host     string `env:"HOST" comment:"CamillaDSP websocket 监听地址"`
	Timeout  int    `env:"TIMEOUT" comment:"请求超时时间 (毫秒)，0 表示一直等待"`
	LogLevel string `env:"LOG_LEVEL" comment:"日志级别: debug, info, warn, error"`
}

// DefaultConfig 返回默认配置
// 这是配置默认值的唯一来源 (Single Source of Truth)
// CLI flags 从此函数读取默认值，--help 显示与代码自动一致
func DefaultConfig() Config {
	return Config{
		Asoundrc: "~/.asoundrc",
		Host:     "127.0.0.1",
		Timeout:  0,
		LogLevel: "info",
	}
}

// LoadEnv 用环境变量覆盖 cfg 中的字段。
// environ 为 nil 时读取进程环境变量。
func LoadEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ResolvePath expands a leading "~" to the invoking user's home directory.
func ResolvePath(path string) (string, error) {
	resolved, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	return resolved, nil
}
