package updatevolume

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251124-camilla-volume/internal/config"
)

// Command returns the update-volume CLI command.
// Every flag is optional; without arguments the command reads ~/.asoundrc
// and waits for the daemon without a timeout.
func Command(version string) *cli.Command {
	// 默认配置 - 单一来源 (Single Source of Truth)
	defaults := config.DefaultConfig()

	return &cli.Command{
		Name:    "update-volume",
		Usage:   "Write the current CamillaDSP volume to the cdsp plugin volume file",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "asoundrc",
				Aliases: []string{"c"},
				Value:   defaults.Asoundrc,
				Usage:   "ALSA config file holding the cdsp plugin settings",
			},
			&cli.StringFlag{
				Name:  "host",
				Value: defaults.Host,
				Usage: "CamillaDSP websocket host",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Value: defaults.Timeout,
				Usage: "request timeout in milliseconds (0 waits forever)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: defaults.LogLevel,
				Usage: "log level: debug, info, warn, error",
			},
		},
		Action: action,
	}
}
