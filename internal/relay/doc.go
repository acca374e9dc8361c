// Package relay はGistリレーサービスの内部実装を提供する。
//
// リクエストパスからユーザー名、Gist ID、ファイル名を取り出し、
// Gist一覧APIでファイルを解決したうえでraw URLの本文を取得して返す。
// 成功・失敗を問わず全レスポンスにCORSヘッダーを付与し、
// ブラウザから直接Gistのファイルを読み込めるようにする。
package relay
