package routes

import (
	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	userCtl := controllers.GetUserController(s.Repo, s.AppSess)
	assetCtl := controllers.NewAssetController(s)
	ticketCtl := controllers.NewTicketController(s)
	maintCtl := controllers.NewMaintenanceController(s)
	recloneCtl := controllers.NewRecloneController(s)
	loanCtl := controllers.NewLoanController(s)
	auditCtl := controllers.NewAuditController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 登录（公开）
	// ------------------------------
	r.POST("/api/login", authCtl.Login)

	api := r.Group("/api", authMW, seenMW)
	{
		api.POST("/logout", authCtl.Logout)
		api.GET("/whoami", authCtl.Whoami)
	}

	// ------------------------------
	// 用户管理（仅管理员）
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.POST("", userCtl.CreateUser)
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// 资产
	// ------------------------------
	assets := r.Group("/api/assets", authMW, seenMW)
	{
		assets.GET("", assetCtl.ListAssets) // ?q=&status=
		assets.GET("/next-tag", assetCtl.NextTag)
		assets.GET("/status-counts", assetCtl.StatusCounts)
		assets.GET("/hoto-noncompliant", assetCtl.HotoNonCompliant)
		assets.GET("/:id", assetCtl.GetAsset)

		// 审计核验：任何登录用户可扫可核
		assets.POST("/:id/verify", auditCtl.Verify)

		// Reclone 流程
		assets.GET("/:id/reclone", recloneCtl.Progress)
		assets.POST("/:id/reclone/complete", recloneCtl.CompleteStep)
		assets.POST("/:id/reclone/undo", recloneCtl.UndoStep)
		assets.POST("/:id/reclone/finish", recloneCtl.Finish)
	}

	assetsAdmin := r.Group("/api/assets", authMW, adminMW)
	{
		assetsAdmin.POST("", assetCtl.CreateAsset)
		assetsAdmin.PUT("/:id", assetCtl.UpdateAsset)
		assetsAdmin.DELETE("/:id", assetCtl.DeleteAsset)
		assetsAdmin.PUT("/:id/loanable", assetCtl.SetLoanable)
	}

	// 扫码解析
	r.POST("/api/scan", authMW, seenMW, assetCtl.Scan)

	// ------------------------------
	// Reclone 票券
	// ------------------------------
	tickets := r.Group("/api/tickets", authMW, seenMW)
	{
		tickets.GET("/purchases", ticketCtl.ListPurchases) // ?available=true
		tickets.GET("/assignments", ticketCtl.ListAssignments)
		tickets.GET("/stats", ticketCtl.Stats)
		tickets.POST("/assign", ticketCtl.Assign)
	}
	r.POST("/api/tickets/purchases", authMW, adminMW, ticketCtl.Purchase)

	// ------------------------------
	// 维保合约（槽位同一套池子算法）
	// ------------------------------
	maint := r.Group("/api/maintenance", authMW, seenMW)
	{
		maint.GET("/contracts", maintCtl.ListContracts) // ?available=true
		maint.GET("/assignments", maintCtl.ListAssignments)
	}
	maintAdmin := r.Group("/api/maintenance", authMW, adminMW)
	{
		maintAdmin.POST("/contracts", maintCtl.Purchase)
		maintAdmin.POST("/assign", maintCtl.Assign)
		maintAdmin.DELETE("/assignments/:id", maintCtl.Unassign)
	}

	// ------------------------------
	// 借用申请
	// ------------------------------
	loans := r.Group("/api/loans", authMW, seenMW)
	{
		loans.POST("", loanCtl.Submit)
		loans.GET("", loanCtl.List) // ?status=
		loans.GET("/pending-count", loanCtl.PendingCount)
	}
	loansAdmin := r.Group("/api/loans", authMW, adminMW)
	{
		loansAdmin.POST("/:id/approve", loanCtl.Approve)
		loansAdmin.POST("/:id/reject", loanCtl.Reject)
	}

	// ------------------------------
	// 审计周期
	// ------------------------------
	r.GET("/api/audit/progress", authMW, seenMW, auditCtl.Progress)
	audit := r.Group("/api/audit", authMW, adminMW)
	{
		audit.POST("/reset", auditCtl.Reset)
		audit.GET("/log", auditCtl.Log)
	}

	// Reclone 步骤定义（静态）
	r.GET("/api/reclone/steps", authMW, recloneCtl.Steps)
}
