// Package httpclient は上流サービスへのHTTP通信を行うクライアントを提供する。
//
// Gist一覧APIへのJSONリクエストと、raw URLからのファイル本文取得に使用する。
// タイムアウト、共通ヘッダー、リクエストIDの伝播を一箇所にまとめ、
// 上流との通信パターンを統一する。
package httpclient
