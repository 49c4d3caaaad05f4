package app

import (
	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认用户仍存在，并把角色放进 Context（只查一次）
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("userName", u.Name)
		c.Set("isAdmin", u.IsAdmin())

		c.Next()
	}
}

// AdminOnly 角色门禁在调用边界，不进引擎的不变式
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("isAdmin")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if admin, _ := v.(bool); !admin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
