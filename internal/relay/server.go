package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/gistrelay/pkg/gist"
	"github.com/nao1215/gistrelay/pkg/middleware"
)

// GistDirectory はGist一覧APIへのアクセスを抽象化する。
// 本番では *gist.Client を使用する。
type GistDirectory interface {
	// ListGists はユーザーの公開Gist一覧を返す。
	ListGists(ctx context.Context, username string) ([]gist.GistSummary, error)
	// FetchRaw はraw URLからファイル本文を取得する。
	FetchRaw(ctx context.Context, rawURL string) ([]byte, error)
}

// Config はリレーサーバーの設定。
type Config struct {
	// Addr はリレーのリッスンアドレス（例: ":3000"）。
	Addr string
	// MetricsAddr は /metrics と /health を公開するアドレス。空の場合は起動しない。
	MetricsAddr string
	// AllowedOrigins はCORSで許可するオリジン。空の場合は全オリジンを許可する。
	AllowedOrigins []string
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration
}

// Server はGistリレーのHTTPサーバー。
type Server struct {
	// router はリレー用のGinルーター。
	router *gin.Engine
	// ops はメトリクスとヘルスチェック用のGinルーター。
	ops *gin.Engine
	// cfg はサーバー設定。
	cfg Config
	// gists はGist一覧APIへのアクセス。
	gists GistDirectory
	// metrics はPrometheusメトリクス。
	metrics *metrics
}

// NewServer は新しいリレーサーバーを生成する。
func NewServer(cfg Config, directory GistDirectory) *Server {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{middleware.AllowAllOrigins}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	m := newMetrics()

	// CORSはRecoveryより外側に置き、パニック時のレスポンスにもヘッダーを残す
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Recovery())

	ops := gin.New()
	ops.Use(middleware.Recovery())

	s := &Server{
		router:  router,
		ops:     ops,
		cfg:     cfg,
		gists:   instrumentedDirectory{next: directory, metrics: m},
		metrics: m,
	}
	s.setupRoutes()

	return s
}

// Handler はリレー用のhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// OpsHandler はメトリクスとヘルスチェック用のhttp.Handlerを返す。
func (s *Server) OpsHandler() http.Handler {
	return s.ops
}

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	// ユーザー名と衝突しないよう、リレーはパス全体を1つのルートで受ける
	s.router.GET("/*path", s.handleRelay())
	s.router.HEAD("/*path", s.handleRelay())
	s.router.NoRoute(s.handleMethodNotAllowed())

	s.ops.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	s.ops.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gistrelay"})
	})
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで待つ。
// キャンセル後はShutdownTimeoutの範囲で処理中のリクエストの完了を待つ。
func (s *Server) Run(ctx context.Context) error {
	servers := []*http.Server{{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if s.cfg.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              s.cfg.MetricsAddr,
			Handler:           s.ops,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Info().Msgf("Listening on %s", displayAddr(srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("サーバーの起動に失敗 (%s): %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("シャットダウンに失敗 (%s): %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// displayAddr はログ表示用にホスト省略のアドレスへlocalhostを補う。
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
