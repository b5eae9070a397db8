package updatevolume

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251124-camilla-volume/internal/config"
	"github.com/lwmacct/251124-camilla-volume/internal/logger"
	"github.com/lwmacct/251124-camilla-volume/internal/updater"
)

// 配置优先级 (从低到高)：
// 1. 默认值 (config.DefaultConfig)
// 2. 环境变量 (UPDATE_VOLUME_*)
// 3. CLI flags (用户明确指定)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	u, err := updater.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return u.Run(ctx)
}

// loadConfig merges defaults, environment and explicitly set flags.
func loadConfig(cmd *cli.Command, environ map[string]string) (config.Config, error) {
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg, environ); err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("asoundrc") {
		cfg.Asoundrc = cmd.String("asoundrc")
	}
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = int(cmd.Int("timeout"))
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	return cfg, nil
}
