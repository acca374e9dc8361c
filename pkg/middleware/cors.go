package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowAllOrigins は全オリジンを許可する指定。
const AllowAllOrigins = "*"

// allowMethods はAccess-Control-Allow-Methodsに設定する値。
const allowMethods = "GET, POST, PUT, DELETE, OPTIONS"

// CORS は指定されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// allowedOriginsに"*"が含まれる場合はOriginヘッダーの有無に関わらず
// Access-Control-Allow-Origin: * を全レスポンスに付与する。
// ヘッダーはハンドラ実行前に設定するため、エラーレスポンスにも付与される。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == AllowAllOrigins {
			allowAll = true
		}
		originsSet[o] = struct{}{}
	}

	return func(c *gin.Context) {
		if allowAll {
			setCORSHeaders(c, AllowAllOrigins)
		} else {
			origin := c.GetHeader("Origin")
			if _, ok := originsSet[origin]; ok {
				setCORSHeaders(c, origin)
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setCORSHeaders はCORSレスポンスヘッダーを設定する。
func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Methods", allowMethods)
	c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
	c.Header("Access-Control-Max-Age", "86400")
}
