package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// SessionValidator resolves a session token to its owner email.
type SessionValidator interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

// AuthMiddleware rejects requests without a live session. A missing cookie,
// an unknown token and an expired session all produce the same 401.
func AuthMiddleware(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		email, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}

func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("email")
	if !exists {
		return "", false
	}
	return email.(string), true
}
