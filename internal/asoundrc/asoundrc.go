// Package asoundrc 从 ALSA 配置文件 (~/.asoundrc) 中提取 CamillaDSP 相关设置。
//
// 识别两个指令前缀：
//   - "-p"       CamillaDSP websocket 端口 (cdsp 插件的 cargs 参数)
//   - "vol_file" cdsp 插件读取的音量文件路径
//
// 前缀匹配是对去除首尾空白后的整行做简单的字符串前缀判断，
// 同一指令出现多次时以文件中最后一次为准。
package asoundrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	PortPrefix    = "-p"
	VolFilePrefix = "vol_file"

	DefaultPort    = 1234
	DefaultVolFile = "hello"
)

var (
	// ErrNotFound is returned by Load when the configuration file does not exist.
	ErrNotFound = errors.New("asoundrc not found")
	// ErrInvalidPort is wrapped by ParseError when a port directive is not an integer.
	ErrInvalidPort = errors.New("invalid port")
)

// Settings holds the values extracted from the configuration file.
type Settings struct {
	Port    int
	VolFile string
}

// Defaults returns the settings used when no directive matches.
func Defaults() Settings {
	return Settings{
		Port:    DefaultPort,
		VolFile: DefaultVolFile,
	}
}

// ParseError reports a directive that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses the configuration file at path.
func Load(path string) (Settings, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the invoking user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return Settings{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	settings, err := Parse(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Parse scans r line by line and applies every recognised directive in order.
func Parse(r io.Reader) (Settings, error) {
	settings := Defaults()

	// lines may be arbitrarily long
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return Settings{}, fmt.Errorf("failed to read config: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}
		lineNo++
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, PortPrefix) {
			value := directiveValue(PortPrefix, line)
			port, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Settings{}, &ParseError{
					Line: lineNo,
					Text: line,
					Err:  fmt.Errorf("%w: %w", ErrInvalidPort, err),
				}
			}
			settings.Port = port
		}
		if strings.HasPrefix(line, VolFilePrefix) {
			settings.VolFile = directiveValue(VolFilePrefix, line)
		}

		if readErr != nil {
			break
		}
	}

	return settings, nil
}

// directiveValue drops every occurrence of prefix, spaces and double quotes.
func directiveValue(prefix, line string) string {
	value := strings.ReplaceAll(line, prefix, "")
	value = strings.ReplaceAll(value, " ", "")
	return strings.ReplaceAll(value, `"`, "")
}
