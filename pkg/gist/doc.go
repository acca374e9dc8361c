// Package gist はGist一覧APIのデータモデルとクライアントを提供する。
//
// ユーザーの公開Gist一覧を取得し、レスポンスの構造を検証したうえで
// GistSummary と FileDescriptor に変換する。files オブジェクトは
// 上流のキー順序を保持したまま Files として扱う。
package gist
