// Package middleware はGinベースのHTTPサーバーで使用する共通ミドルウェアを提供する。
//
// CORSヘッダーの付与、パニックリカバリ、リクエストIDの採番、
// zerologによるリクエストログなど、リレーとopsの両リスナーで
// 共通して使用するミドルウェアを含む。
package middleware
