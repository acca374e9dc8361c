package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLog はグローバルロガーを初期化する。
// formatが"json"の場合はJSON、それ以外はコンソール形式で出力する。
// 不正なレベルはinfoとして扱う。
func InitLog(level, format string) {
	InitLogTo(os.Stdout, level, format)
}

// InitLogTo は出力先を指定してグローバルロガーを初期化する。
func InitLogTo(w io.Writer, level, format string) {
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
