package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/models"
	"Gin_postgres_redis_asset_tracker/session"

	"Gin_postgres_redis_asset_tracker/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	repo    *db.Repo
	appSess *session.AppSessionStore
}

func GetUserController(repo *db.Repo, appSess *session.AppSessionStore) *UserController {
	return &UserController{repo: repo, appSess: appSess}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

// POST /api/users（仅管理员）
func (uc *UserController) CreateUser(c *gin.Context) {
	var in createUserRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: string(hash),
	}
	if err := uc.repo.CreateUser(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

// GET /api/users?q=alice&page=1&size=20
func (uc *UserController) ListUsers(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.repo.ListUsers(c.Request.Context(), q, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "users": res.Users})
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing id"})
		return
	}

	// 不允许删除自己，避免锁死
	if actorID(c) == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}

	if err := uc.repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	// 撤销该用户的所有登录会话
	_ = uc.appSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
