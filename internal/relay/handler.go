package relay

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nao1215/gistrelay/pkg/httpclient"
	"github.com/nao1215/gistrelay/pkg/middleware"
)

// handleRelay はGistのファイルを中継するハンドラを返す。
// 上流呼び出しは一覧取得、本文取得の順に1回ずつ行い、
// 本文をすべて受け取ってからレスポンスを書き込む。
func (s *Server) handleRelay() gin.HandlerFunc {
	return func(c *gin.Context) {
		// %2F を含むセグメントを分割しないよう、デコード前のパスを解釈する
		ref, err := ParseGistPath(c.Request.URL.EscapedPath())
		if err != nil {
			s.respondError(c, err)
			return
		}

		ctx := httpclient.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))

		gists, err := s.gists.ListGists(ctx, ref.Username)
		if err != nil {
			s.respondError(c, &Error{
				Kind:       KindUpstreamUnavailable,
				Message:    "Upstream unavailable: failed to list gists for " + ref.Username,
				StatusCode: http.StatusBadGateway,
				Err:        err,
			})
			return
		}

		found, file, err := Resolve(gists, ref)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if err := validateResolved(found, file); err != nil {
			s.respondError(c, &Error{
				Kind:       KindUpstreamUnavailable,
				Message:    "Upstream unavailable: failed to list gists for " + ref.Username,
				StatusCode: http.StatusBadGateway,
				Err:        err,
			})
			return
		}

		body, err := s.gists.FetchRaw(ctx, file.RawURL)
		if err != nil {
			s.respondError(c, &Error{
				Kind:       KindUpstreamUnavailable,
				Message:    "Upstream unavailable: failed to fetch " + file.Filename,
				StatusCode: http.StatusBadGateway,
				Err:        err,
			})
			return
		}

		c.Data(http.StatusOK, ContentTypeFor(file.Filename), body)
		s.metrics.observeRequest(http.StatusOK, "ok")
		s.metrics.relayedBytes.Add(float64(len(body)))
	}
}

// handleMethodNotAllowed はGETとHEAD以外のメソッドに405を返す。
// OPTIONSはCORSミドルウェアが先に応答するためここには届かない。
func (s *Server) handleMethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", "GET, HEAD, OPTIONS")
		s.respondError(c, newError(KindMethodNotAllowed, "Method not allowed: "+c.Request.Method))
	}
}

// respondError はエラーメッセージをプレーンテキストで返す。
// CORSヘッダーはCORSミドルウェアが設定済みのため、ここでは本文とステータスのみ書き込む。
// *Error以外のエラーは内部エラーとして500を返し、詳細はログにのみ出力する。
func (s *Server) respondError(c *gin.Context, err error) {
	var relayErr *Error
	if !errors.As(err, &relayErr) {
		relayErr = &Error{Message: "Internal server error", StatusCode: http.StatusInternalServerError, Err: err}
	}
	status := relayErr.Status()

	event := log.Debug()
	if status >= http.StatusInternalServerError {
		event = log.Warn().Err(relayErr.Err)
	}
	event.
		Str("request_id", middleware.GetRequestID(c)).
		Str("kind", relayErr.Kind.String()).
		Int("status", status).
		Msg(relayErr.Message)

	c.Data(status, "text/plain; charset=utf-8", []byte(relayErr.Message))
	s.metrics.observeRequest(status, relayErr.Kind.String())
}
