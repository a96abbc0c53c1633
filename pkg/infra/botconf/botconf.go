package botconf

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the properties resource searched on the resource path
	FileName = "xlr-bot.conf"
	// TOMLFileName is accepted when a directory has no FileName
	TOMLFileName = "xlr-bot.toml"

	keyBotURL = "bot.url"
)

// DefaultSearchPath is used when no resource path is configured
var DefaultSearchPath = []string{".", "conf", "/etc/xlr-bot"}

// Settings is the resolved bot configuration
type Settings struct {
	BotURL string
	Source string // file the URL came from, empty for the default
}

type tomlFile struct {
	Bot struct {
		URL string `toml:"url"`
	} `toml:"bot"`
}

// Load searches dirs in order for the first bot configuration file and
// returns its settings. Read and parse failures are ignored and the
// default URL is kept.
func Load(ctx context.Context, dirs []string) *Settings {
	logger := ctxlog.From(ctx)
	if len(dirs) == 0 {
		dirs = DefaultSearchPath
	}

	settings := &Settings{BotURL: types.DefaultBotURL}

	path, loader := find(dirs)
	if path == "" {
		logger.Debug("No bot configuration found on resource path", "dirs", dirs)
		return settings
	}

	url, err := loader(path)
	if err != nil {
		logger.Debug("Ignoring unreadable bot configuration", "path", path, "error", err)
		return settings
	}
	if url != "" {
		settings.BotURL = strings.TrimSuffix(url, "/")
		settings.Source = path
	}

	return settings
}

func find(dirs []string) (string, func(string) (string, error)) {
	for _, dir := range dirs {
		if p := filepath.Join(dir, FileName); exists(p) {
			return p, loadProperties
		}
		if p := filepath.Join(dir, TOMLFileName); exists(p) {
			return p, loadTOML
		}
	}
	return "", nil
}

func exists(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !st.IsDir()
}

func loadProperties(path string) (string, error) {
	// values are literal, ${...} is not expanded
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to load properties", goerr.V("path", path))
	}
	return strings.TrimSpace(p.GetString(keyBotURL, "")), nil
}

func loadTOML(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read toml", goerr.V("path", path))
	}

	var f tomlFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return "", goerr.Wrap(err, "failed to parse toml", goerr.V("path", path))
	}
	return strings.TrimSpace(f.Bot.URL), nil
}
