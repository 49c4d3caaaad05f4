// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// actor 从鉴权中间件取操作者展示名
func actor(c *gin.Context) string {
	if v, ok := c.Get("userName"); ok {
		if name, _ := v.(string); name != "" {
			return name
		}
	}
	v, _ := c.Get("username")
	name, _ := v.(string)
	return name
}

func actorID(c *gin.Context) string {
	v, _ := c.Get("userID")
	id, _ := v.(string)
	return id
}

// 引擎错误种类 → HTTP 状态码
func httpStatus(err error) int {
	switch {
	case errors.Is(err, db.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, db.ErrExhausted), errors.Is(err, db.ErrState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), app.H{"error": err.Error()})
}
