package gist

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/nao1215/gistrelay/pkg/httpclient"
)

// DefaultAPIBase は公開Gist APIのベースURL。
const DefaultAPIBase = "https://api.github.com"

// ErrUpstream は上流（Gist一覧APIまたはraw URL）との通信に失敗したことを表す。
// 通信エラー、タイムアウト、2xx以外のステータス、デコード失敗、構造不正のすべてを含む。
var ErrUpstream = errors.New("upstream unavailable")

// Client はGist一覧APIのクライアント。
type Client struct {
	// http はAPI通信に使用するHTTPクライアント。
	http *httpclient.Client
}

// Config はClientの設定。
type Config struct {
	// APIBase はGist一覧APIのベースURL。空の場合はDefaultAPIBaseを使用する。
	APIBase string
	// Timeout は上流への1リクエストあたりのタイムアウト。
	Timeout time.Duration
	// UserAgent は上流に送るUser-Agent。
	UserAgent string
}

// NewClient は新しいGist一覧APIクライアントを生成する。
func NewClient(cfg Config) *Client {
	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	opts := []httpclient.Option{
		httpclient.WithHeader("Accept", "application/vnd.github+json"),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, httpclient.WithHeader("User-Agent", cfg.UserAgent))
	}
	return &Client{http: httpclient.New(base, opts...)}
}

// ListGists はユーザーの公開Gist一覧（1ページ目）を取得する。
// 個々のGistの構造は検証しない。参照するGistとファイルだけを呼び出し側で検証する。
// 失敗した場合はErrUpstreamをラップしたエラーを返す。
func (c *Client) ListGists(ctx context.Context, username string) ([]GistSummary, error) {
	path := "/users/" + url.PathEscape(username) + "/gists"

	var gists []GistSummary
	if err := c.http.GetJSON(ctx, path, &gists); err != nil {
		return nil, fmt.Errorf("%w: Gist一覧の取得に失敗: %w", ErrUpstream, err)
	}
	return gists, nil
}

// FetchRaw はraw URLからファイル本文を取得する。本文はすべてバッファされる。
// 失敗した場合はErrUpstreamをラップしたエラーを返す。
func (c *Client) FetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.http.GetBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: ファイル本文の取得に失敗: %w", ErrUpstream, err)
	}
	return body, nil
}
