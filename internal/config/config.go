// Package config はgistrelayの設定とロガーの初期化を提供する。
//
// 設定はコマンドライン引数、環境変数、デフォルト値の順に解決する。
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	flags "github.com/jessevdk/go-flags"
)

// Config はgistrelayの起動設定。
type Config struct {
	// Port はリレーのリッスンポート。
	Port string `long:"port" env:"PORT" default:"3000" description:"リレーのリッスンポート" validate:"required,numeric"`
	// GistAPIBase はGist一覧APIのベースURL。
	GistAPIBase string `long:"gist-api-base" env:"GIST_API_BASE" default:"https://api.github.com" description:"Gist一覧APIのベースURL" validate:"required,url"`
	// UpstreamTimeout は上流への1リクエストあたりのタイムアウト。
	UpstreamTimeout time.Duration `long:"upstream-timeout" env:"UPSTREAM_TIMEOUT" default:"10s" description:"上流への1リクエストあたりのタイムアウト" validate:"gt=0"`
	// AllowedOrigins はCORSで許可するオリジン。"*"は全オリジンを許可する。
	AllowedOrigins []string `long:"allowed-origin" env:"CORS_ALLOWED_ORIGINS" env-delim:"," default:"*" description:"CORSで許可するオリジン（複数指定可）" validate:"min=1,dive,required"`
	// MetricsAddr はメトリクスとヘルスチェックを公開するアドレス。空の場合は無効。
	MetricsAddr string `long:"metrics-addr" env:"METRICS_ADDR" description:"/metrics と /health を公開するアドレス（例: :9090）" validate:"omitempty,hostname_port|startswith=:"`
	// UserAgent は上流に送るUser-Agent。
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"gistrelay" description:"上流に送るUser-Agent" validate:"required"`
	// LogLevel はログレベル。
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"ログレベル" validate:"oneof=trace debug info warn error fatal panic disabled"`
	// LogFormat はログの出力形式。
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"console" description:"ログの出力形式" validate:"oneof=console json"`
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"10s" description:"グレースフルシャットダウンの待ち時間" validate:"gt=0"`
}

// Load はコマンドライン引数と環境変数から設定を読み込み、検証する。
// --help が指定された場合は flags.ErrHelp 型の *flags.Error を返す。
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "gistrelay"
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("設定値が不正: %w", err)
	}
	return nil
}

// ListenAddr はリレーのリッスンアドレスを返す。
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// IsHelp はerrが--helpによる終了要求かどうかを返す。
func IsHelp(err error) bool {
	flagsErr, ok := err.(*flags.Error)
	return ok && flagsErr.Type == flags.ErrHelp
}
