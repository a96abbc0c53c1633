package botconf_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/xlrbot/pkg/domain/types"
	"github.com/m-mizutani/xlrbot/pkg/infra/botconf"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Properties(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, botconf.FileName, "# bot settings\nbot.url=http://bot.local\nother.key=1\n")

	s := botconf.Load(context.Background(), []string{dir})
	gt.Value(t, s.BotURL).Equal("http://bot.local")
	gt.Value(t, s.Source).Equal(path)
}

func TestLoad_LiteralValues(t *testing.T) {
	t.Run("placeholder is not expanded", func(t *testing.T) {
		t.Setenv("XLRBOT_TEST_HOST", "elsewhere")
		dir := t.TempDir()
		writeFile(t, dir, botconf.FileName, "host=other\nbot.url=http://${XLRBOT_TEST_HOST}:8080\n")

		s := botconf.Load(context.Background(), []string{dir})
		gt.Value(t, s.BotURL).Equal("http://${XLRBOT_TEST_HOST}:8080")
	})

	t.Run("unclosed placeholder", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, botconf.FileName, "bot.url=http://bot.local/${x\n")

		s := botconf.Load(context.Background(), []string{dir})
		gt.Value(t, s.BotURL).Equal("http://bot.local/${x")
		gt.Value(t, s.Source).Equal(path)
	})
}

func TestLoad_TrailingSlash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, botconf.FileName, "bot.url = http://bot.local:9000/\n")

	s := botconf.Load(context.Background(), []string{dir})
	gt.Value(t, s.BotURL).Equal("http://bot.local:9000")
}

func TestLoad_Default(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		s := botconf.Load(context.Background(), []string{t.TempDir()})
		gt.Value(t, s.BotURL).Equal(types.DefaultBotURL)
		gt.Value(t, s.Source).Equal("")
	})

	t.Run("key missing", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, botconf.FileName, "bot.name=lita\n")
		s := botconf.Load(context.Background(), []string{dir})
		gt.Value(t, s.BotURL).Equal(types.DefaultBotURL)
	})

	t.Run("broken toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, botconf.TOMLFileName, "[bot\nurl = ")
		s := botconf.Load(context.Background(), []string{dir})
		gt.Value(t, s.BotURL).Equal(types.DefaultBotURL)
	})

	t.Run("missing directory", func(t *testing.T) {
		s := botconf.Load(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
		gt.Value(t, s.BotURL).Equal(types.DefaultBotURL)
	})
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, botconf.TOMLFileName, "[bot]\nurl = \"http://toml.local\"\n")

	s := botconf.Load(context.Background(), []string{dir})
	gt.Value(t, s.BotURL).Equal("http://toml.local")
}

func TestLoad_SearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, botconf.FileName, "bot.url=http://second\n")

	s := botconf.Load(context.Background(), []string{first, second})
	gt.Value(t, s.BotURL).Equal("http://second")

	writeFile(t, first, botconf.FileName, "bot.url=http://first\n")
	s = botconf.Load(context.Background(), []string{first, second})
	gt.Value(t, s.BotURL).Equal("http://first")
}

func TestLoad_PropertiesWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, botconf.FileName, "bot.url=http://props\n")
	writeFile(t, dir, botconf.TOMLFileName, "[bot]\nurl = \"http://toml\"\n")

	s := botconf.Load(context.Background(), []string{dir})
	gt.Value(t, s.BotURL).Equal("http://props")
}
