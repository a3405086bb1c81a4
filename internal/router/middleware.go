package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/repository"
)

// UserLoader checks for a username in the session. If found and still valid,
// the username is placed in the context. Sessions for users who no longer
// exist are cleared so they do not linger as zombies.
func UserLoader(log *zap.Logger, users repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, ok := session.Get("username").(string)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			log.Debug("Clearing session for unknown user", zap.String("username", username))
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			session.Save()
			c.Next()
			return
		}

		c.Set("username", user.Username)
		c.Next()
	}
}

// AuthRequired rejects requests that did not load a valid user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("username") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
