package controllers

import (
	"net/http"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByUsername(c.Request.Context(), in.Username)
	if err != nil {
		// 不区分用户不存在和密码错误
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid username or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid username or password"})
		return
	}

	_ = ac.Repo.TouchUserLogin(c.Request.Context(), u.ID) // 不阻塞

	sid := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), sid, u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ac.setAppCookie(c.Writer, sid, ac.Cfg.SessionTTL)

	c.JSON(http.StatusOK, app.H{"user": app.H{
		"id":       u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     u.Role,
	}})
}

// POST /api/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/whoami
func (ac *AuthController) Whoami(c *gin.Context) {
	u, err := ac.Repo.FindUserByID(c.Request.Context(), actorID(c))
	if err != nil {
		fail(c, db.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
