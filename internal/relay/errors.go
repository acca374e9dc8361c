package relay

import (
	"errors"
	"net/http"
)

// ErrorKind はリレーが返すエラーの種別。
type ErrorKind int

const (
	// KindMissingUsername はパスにユーザー名が無いことを表す。
	KindMissingUsername ErrorKind = iota + 1
	// KindMissingGistID はパスにGist IDが無いことを表す。
	KindMissingGistID
	// KindTooManyArguments はパスのセグメントが多すぎることを表す。
	KindTooManyArguments
	// KindNoGistsForUser はユーザーに公開Gistが無いことを表す。
	KindNoGistsForUser
	// KindGistNotFound は指定IDのGistが無いことを表す。
	KindGistNotFound
	// KindFileNotFound は対象のファイルが無いことを表す。
	KindFileNotFound
	// KindUpstreamUnavailable は上流との通信に失敗したことを表す。
	KindUpstreamUnavailable
	// KindMethodNotAllowed はGETとHEAD以外のメソッドで呼ばれたことを表す。
	KindMethodNotAllowed
)

// String はメトリクスのラベルやログに使用する種別名を返す。
func (k ErrorKind) String() string {
	switch k {
	case KindMissingUsername:
		return "missing_username"
	case KindMissingGistID:
		return "missing_gist_id"
	case KindTooManyArguments:
		return "too_many_arguments"
	case KindNoGistsForUser:
		return "no_gists_for_user"
	case KindGistNotFound:
		return "gist_not_found"
	case KindFileNotFound:
		return "file_not_found"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unknown"
	}
}

// Error はクライアントにプレーンテキストで返すエラー。
type Error struct {
	// Kind はエラー種別。
	Kind ErrorKind
	// Message はレスポンスボディとして返すメッセージ。
	Message string
	// StatusCode はHTTPステータスコード。0の場合は400として扱う。
	StatusCode int
	// Err は原因となったエラー。クライアントには返さずログにのみ出力する。
	Err error
}

// newError は種別に応じたステータスコードを持つErrorを生成する。
func newError(kind ErrorKind, message string) *Error {
	e := &Error{Kind: kind, Message: message}
	switch kind {
	case KindUpstreamUnavailable:
		e.StatusCode = http.StatusBadGateway
	case KindMethodNotAllowed:
		e.StatusCode = http.StatusMethodNotAllowed
	}
	return e
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap は原因となったエラーを返す。
func (e *Error) Unwrap() error {
	return e.Err
}

// Status はHTTPステータスコードを返す。
func (e *Error) Status() int {
	if e.StatusCode == 0 {
		return http.StatusBadRequest
	}
	return e.StatusCode
}

// IsKind はerrが指定種別のErrorかどうかを返す。
func IsKind(err error, kind ErrorKind) bool {
	var relayErr *Error
	return errors.As(err, &relayErr) && relayErr.Kind == kind
}
