// Package updater 把 CamillaDSP 当前音量同步到 cdsp 插件的音量文件。
//
// 执行流程严格按顺序进行，任何一步失败都立即返回：
//  1. 读取 ~/.asoundrc，得到 websocket 端口和音量文件路径
//  2. 通过 websocket 向 CamillaDSP 查询当前音量
//  3. 以独占方式创建音量文件并写入 "<音量> 0"
package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/lwmacct/251124-camilla-volume/internal/asoundrc"
	"github.com/lwmacct/251124-camilla-volume/internal/camilla"
	"github.com/lwmacct/251124-camilla-volume/internal/config"
	"github.com/lwmacct/251124-camilla-volume/internal/logger"
	"github.com/lwmacct/251124-camilla-volume/internal/volfile"
)

// Updater performs one volume sync.
type Updater struct {
	asoundrc string
	client   *camilla.Client
	log      *logger.Logger
}

// New creates an Updater from cfg.
func New(cfg config.Config, log *logger.Logger) (*Updater, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %d", cfg.Timeout)
	}

	path, err := config.ResolvePath(cfg.Asoundrc)
	if err != nil {
		return nil, err
	}

	return &Updater{
		asoundrc: path,
		client: camilla.NewClient(camilla.Options{
			Host:    cfg.Host,
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
			Logger:  log,
		}),
		log: log,
	}, nil
}

// Run reads the ALSA config, queries the daemon and writes the volume file.
func (u *Updater) Run(ctx context.Context) error {
	settings, err := asoundrc.Load(u.asoundrc)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	u.log.Debug().
		Str("asoundrc", u.asoundrc).
		Int("port", settings.Port).
		Str("vol_file", settings.VolFile).
		Msg("config loaded")

	vol, err := u.client.GetVolume(ctx, settings.Port)
	if err != nil {
		return fmt.Errorf("query volume: %w", err)
	}

	if err := volfile.Write(settings.VolFile, vol); err != nil {
		return fmt.Errorf("write volume: %w", err)
	}

	u.log.Info().
		Str("volume", vol.String()).
		Str("vol_file", settings.VolFile).
		Msg("volume file written")
	return nil
}
