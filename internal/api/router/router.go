package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/api/handler"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/api/middleware"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/jwt"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 仅在缓存后端为 Redis 时非 nil，用于限流；其余后端限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *kvstore.Redis, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	v1.Use(middleware.RateLimit(rdb, 120, time.Minute))
	{
		// 缴费模块
		fees := v1.Group("/fees")
		{
			fees.GET("/ledgers", h.Fee.ListLedgers)
			fees.GET("/ledgers/:studentId", h.Fee.GetLedger)
			fees.GET("/ledgers/:studentId/suggest", h.Fee.SuggestAmount)
			fees.POST("/ledgers/:studentId/payments",
				middleware.RoleAuth(jwt.RoleAdmin, jwt.RolePrincipal), h.Fee.RecordPayment)
			fees.POST("/challan", h.Fee.BuildChallan)
			fees.POST("/challan/print", h.Fee.PrintChallan)
			fees.GET("/due-list/export",
				middleware.RoleAuth(jwt.RoleAdmin, jwt.RolePrincipal), h.Export.DueList)
		}

		// 考勤模块
		attendance := v1.Group("/attendance")
		{
			attendance.GET("/roster", h.Attendance.Roster)
			attendance.POST("", h.Attendance.Submit)
			attendance.GET("/report", h.Attendance.Report)
			attendance.GET("/report/export", h.Export.AttendanceReport)
		}

		// 仪表盘模块
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/trends", h.Dashboard.Trends)
		}

		// 活动日志模块
		activities := v1.Group("/activities")
		{
			activities.GET("", h.Activity.List)
			activities.POST("", h.Activity.Record)
		}
	}

	return r
}
