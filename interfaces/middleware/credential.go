package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const APIKeyContextKey = "api_key"

// Credential lifts an "Authorization: Bearer <key>" header into the gin
// context as a per-request generation key. Requests without one fall back to
// the stored key, so nothing is rejected here.
func Credential() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if key := bearerToken(ctx.GetHeader("Authorization")); key != "" {
			ctx.Set(APIKeyContextKey, key)
		}
		ctx.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
