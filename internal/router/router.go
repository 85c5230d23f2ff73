package router

import (
	"time"

	"github.com/brightforge-studio/brightforge/internal/handlers"
	"github.com/brightforge-studio/brightforge/internal/middleware"
	"github.com/brightforge-studio/brightforge/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.POST("/forgot_password", handlers.ForgotPassword)
			auth.POST("/reset_password", handlers.ResetPassword)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.GET("/role", middleware.AuthMiddleware(), handlers.Role)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Milestone endpoints
			projects.POST("/:project_id/milestones", handlers.CreateMilestone)
			projects.GET("/:project_id/milestones", handlers.ListMilestones)
			projects.PATCH("/:project_id/milestones/:milestone_id", handlers.UpdateMilestone)
			projects.DELETE("/:project_id/milestones/:milestone_id", handlers.DeleteMilestone)

			// Time entry endpoints
			projects.POST("/:project_id/time-entries", handlers.CreateTimeEntry)
			projects.GET("/:project_id/time-entries", handlers.ListTimeEntries)
			projects.DELETE("/:project_id/time-entries/:entry_id", handlers.DeleteTimeEntry)
		}

		invoices := api.Group("/invoices", middleware.AuthMiddleware())
		{
			invoices.GET("", handlers.ListInvoices)
			invoices.GET("/:invoice_id", handlers.GetInvoice)
		}

		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)

		blog := api.Group("/blog")
		{
			blog.GET("/articles", handlers.ListArticles)
			blog.GET("/articles/:slug", handlers.GetArticle)
			blog.GET("/articles/:slug/comments", handlers.ListComments)
			blog.POST("/articles/:slug/comments", middleware.AuthMiddleware(), handlers.CreateComment)
			blog.POST("/articles/:slug/vote", middleware.AuthMiddleware(), handlers.Vote)
		}

		api.POST("/contact", middleware.OptionalAuth(), handlers.CreateContactSubmission)

		leadCapture := api.Group("/lead-capture")
		{
			leadCapture.POST("/events", middleware.OptionalAuth(), handlers.LeadCaptureEvent)
			leadCapture.POST("/dismiss", handlers.LeadCaptureDismiss)
			leadCapture.POST("/submit", handlers.LeadCaptureSubmit)
		}

		api.POST("/chat", handlers.Chat)

		rpc := api.Group("/rpc", middleware.AuthMiddleware())
		{
			rpc.POST("/get_user_stats", handlers.RPCUserStats)
			rpc.POST("/has_role", handlers.RPCHasRole)
			rpc.POST("/get_admin_projects_data", middleware.RequireAdmin(), handlers.RPCAdminProjectsData)
			rpc.POST("/generate_slug", middleware.RequireAdmin(), handlers.RPCGenerateSlug)
			rpc.POST("/log_security_event", middleware.RequireAdmin(), handlers.RPCLogSecurityEvent)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.PUT("/users/:user_id/role", handlers.AdminChangeRole)

			admin.GET("/projects", handlers.AdminListProjects)
			admin.POST("/projects", handlers.AdminCreateProject)
			admin.PATCH("/projects/:project_id", handlers.AdminUpdateProject)
			admin.DELETE("/projects/:project_id", handlers.AdminDeleteProject)

			admin.POST("/assignments", handlers.AdminCreateAssignment)
			admin.DELETE("/assignments/:assignment_id", handlers.AdminDeleteAssignment)

			admin.POST("/hours", handlers.AdminLogHours)

			admin.POST("/invoices", handlers.AdminCreateInvoice)
			admin.PATCH("/invoices/:invoice_id", handlers.AdminUpdateInvoice)
			admin.DELETE("/invoices/:invoice_id", handlers.AdminDeleteInvoice)

			admin.GET("/articles", handlers.AdminListArticles)
			admin.POST("/articles", handlers.AdminCreateArticle)
			admin.PATCH("/articles/:article_id", handlers.AdminUpdateArticle)
			admin.DELETE("/articles/:article_id", handlers.AdminDeleteArticle)

			admin.GET("/contact-submissions", handlers.AdminListContactSubmissions)
			admin.GET("/security-logs", handlers.AdminListSecurityLogs)
		}
	}

	return r
}
