package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kakkky/mything/errs"
)

// DefaultPath は--configが指定されなかった場合に読み込む設定ファイル
const DefaultPath = ".mything.yaml"

type Config struct {
	Prompt struct {
		// 入力行の先頭に表示する文字列
		Prefix string `yaml:"prefix"`
		// ターミナルのタイトル
		Title string `yaml:"title"`
	} `yaml:"prompt"`

	Log struct {
		// dev | prod
		Env string `yaml:"env"`
		// debug | info | warn | error
		Level string `yaml:"level"`
	} `yaml:"log"`

	Smoke struct {
		// 空の場合は組み込みのスクリプトを使う
		Script string `yaml:"script"`
	} `yaml:"smoke"`
}

// Default は設定ファイルがない場合の設定を返す
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load は.envと設定ファイルを読み込み、環境変数で上書きした設定を返す
// 設定ファイルが存在しない場合はデフォルト値を使う
func Load(path string) (*Config, error) {
	// .envはあれば読む程度の扱い
	_ = godotenv.Load(".env")

	c := &Config{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errs.NewBadInputError("failed to parse config file " + path).Wrap(err)
		}
	case os.IsNotExist(err):
	default:
		return nil, errs.NewInternalError("failed to read config file " + path).Wrap(err)
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MYTHING_PROMPT_PREFIX"); v != "" {
		c.Prompt.Prefix = v
	}
	if v := os.Getenv("MYTHING_TITLE"); v != "" {
		c.Prompt.Title = v
	}
	if v := os.Getenv("MYTHING_LOG_ENV"); v != "" {
		c.Log.Env = v
	}
	if v := os.Getenv("MYTHING_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MYTHING_SMOKE_SCRIPT"); v != "" {
		c.Smoke.Script = v
	}
}

func (c *Config) applyDefaults() {
	if c.Prompt.Prefix == "" {
		c.Prompt.Prefix = ">>> "
	}
	if c.Prompt.Title == "" {
		c.Prompt.Title = "MyThing"
	}
	if c.Log.Env == "" {
		c.Log.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

func (c *Config) validate() error {
	c.Log.Env = strings.ToLower(c.Log.Env)
	if c.Log.Env != "dev" && c.Log.Env != "prod" {
		return errs.NewBadInputError("log.env must be dev or prod, got " + c.Log.Env)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errs.NewBadInputError("unknown log.level " + c.Log.Level)
	}
	return nil
}
