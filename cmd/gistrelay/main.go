// Gistリレーサービスのエントリポイント。
// GET /{username}/{gistId}[/{filename}] で公開Gistのファイル本文を中継する。
// 設定はコマンドライン引数と環境変数（PORT, GIST_API_BASE など）から読み込む。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nao1215/gistrelay/internal/config"
	"github.com/nao1215/gistrelay/internal/relay"
	"github.com/nao1215/gistrelay/pkg/gist"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if config.IsHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(2)
	}

	config.InitLog(cfg.LogLevel, cfg.LogFormat)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := gist.NewClient(gist.Config{
		APIBase:   cfg.GistAPIBase,
		Timeout:   cfg.UpstreamTimeout,
		UserAgent: cfg.UserAgent,
	})

	server := relay.NewServer(relay.Config{
		Addr:            cfg.ListenAddr(),
		MetricsAddr:     cfg.MetricsAddr,
		AllowedOrigins:  cfg.AllowedOrigins,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Gistリレーサービスの起動に失敗")
	}
	log.Info().Msg("Gistリレーサービスを停止しました")
}
