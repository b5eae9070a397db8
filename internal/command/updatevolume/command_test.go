package updatevolume

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251124-camilla-volume/internal/camilla/camillatest"
	"github.com/lwmacct/251124-camilla-volume/internal/config"
)

// runLoadConfig 解析参数并返回合并后的配置
func runLoadConfig(t *testing.T, environ map[string]string, args ...string) config.Config {
	t.Helper()

	var cfg config.Config
	cmd := Command("test")
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		var err error
		cfg, err = loadConfig(c, environ)
		return err
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"update-volume"}, args...)))
	return cfg
}

// TestCommand 测试命令定义
func TestCommand(t *testing.T) {
	cmd := Command("1.2.3")

	assert.Equal(t, "update-volume", cmd.Name)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.NotNil(t, cmd.Action)

	names := make([]string, 0, len(cmd.Flags))
	for _, f := range cmd.Flags {
		names = append(names, f.Names()[0])
	}
	assert.ElementsMatch(t, []string{"asoundrc", "host", "timeout", "log-level"}, names)
}

// TestLoadConfig 测试配置优先级
func TestLoadConfig(t *testing.T) {
	t.Run("无参数使用默认值", func(t *testing.T) {
		cfg := runLoadConfig(t, map[string]string{})

		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("环境变量覆盖默认值", func(t *testing.T) {
		cfg := runLoadConfig(t, map[string]string{
			"UPDATE_VOLUME_ASOUNDRC": "/etc/asound.conf",
			"UPDATE_VOLUME_TIMEOUT":  "3000",
		})

		assert.Equal(t, "/etc/asound.conf", cfg.Asoundrc)
		assert.Equal(t, 3000, cfg.Timeout)
		assert.Equal(t, "127.0.0.1", cfg.Host)
	})

	t.Run("flags 优先于环境变量", func(t *testing.T) {
		cfg := runLoadConfig(t,
			map[string]string{"UPDATE_VOLUME_TIMEOUT": "3000", "UPDATE_VOLUME_HOST": "10.0.0.2"},
			"-c", "/tmp/asoundrc", "--timeout", "250", "--log-level", "debug",
		)

		assert.Equal(t, "/tmp/asoundrc", cfg.Asoundrc)
		assert.Equal(t, 250, cfg.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "10.0.0.2", cfg.Host, "未指定的 flag 不应覆盖环境变量")
	})
}

// TestCommand_Run 端到端运行命令
func TestCommand_Run(t *testing.T) {
	for _, key := range []string{"UPDATE_VOLUME_ASOUNDRC", "UPDATE_VOLUME_HOST", "UPDATE_VOLUME_TIMEOUT", "UPDATE_VOLUME_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	srv := camillatest.NewServer(t, camillatest.Reply(`{"GetVolume":{"value":"75"}}`))
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	asoundrc := filepath.Join(dir, ".asoundrc")
	require.NoError(t, os.WriteFile(asoundrc, []byte(fmt.Sprintf("-p %d\nvol_file \"%s\"\n", srv.Port(), out)), 0600))

	args := []string{"update-volume", "--asoundrc", asoundrc, "--timeout", "5000", "--log-level", "error"}

	t.Run("写入音量文件", func(t *testing.T) {
		err := Command("test").Run(context.Background(), args)

		require.NoError(t, err)
		content, err := os.ReadFile(out) //nolint:gosec // test file with controlled path
		require.NoError(t, err)
		assert.Equal(t, "75 0", string(content))
	})

	t.Run("再次运行因文件已存在而失败", func(t *testing.T) {
		err := Command("test").Run(context.Background(), args)

		assert.Error(t, err)
	})

	t.Run("无效日志级别", func(t *testing.T) {
		err := Command("test").Run(context.Background(), []string{"update-volume", "--asoundrc", asoundrc, "--log-level", "loud"})

		assert.Error(t, err)
	})
}
