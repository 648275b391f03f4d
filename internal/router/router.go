package router

import (
	"log/slog"
	"net/http"
	"time"

	"boardhub/internal/handlers"
	"boardhub/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Board   *handlers.BoardHandler
	Comment *handlers.CommentHandler
	Report  *handlers.ReportHandler
	User    *handlers.UserHandler
}

func New(h Handlers, origins []string, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Link"},
		MaxAge:        300 * time.Second,
	}))

	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Public Routes
	r.GET("/board", h.Board.List)                        // every visible post
	r.GET("/board/categories", h.Board.Categories)       // category list
	r.GET("/board/category/:id", h.Board.ListByCategory) // posts of one category
	r.GET("/board/:id", h.Board.Detail)                  // one post, rendered
	r.GET("/board/:id/comments", h.Comment.List)         // comments of a post

	user := r.Group("/user")
	{
		user.POST("/check/login-id", h.User.CheckLoginID)
		user.POST("/check/nickname", h.User.CheckNickname)
		user.POST("/check/email", h.User.CheckEmail)
		user.POST("/email/send", h.User.SendCode)
		user.POST("/email/check", h.User.CheckCode)
		user.POST("/signup", h.User.SignUp)
		user.POST("/login", h.User.Login)
		user.POST("/login/google", h.User.GoogleLogin)
	}

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.BearerRequired())
	{
		authorized.GET("/board/:id/edit", h.Board.ShowEdit)
		authorized.POST("/board", h.Board.Create)
		authorized.PATCH("/board", h.Board.Update)
		authorized.DELETE("/board", h.Board.Delete)
		authorized.POST("/board/:id/recommend", h.Board.Recommend)

		authorized.POST("/comment", h.Comment.Create)
		authorized.PATCH("/comment", h.Comment.Update)
		authorized.DELETE("/comment", h.Comment.Delete)

		authorized.POST("/report", h.Report.Submit)
		authorized.GET("/report", h.Report.ListOpen) // moderators only
		authorized.POST("/report/ban", h.Report.Ban) // moderators only
	}
}
