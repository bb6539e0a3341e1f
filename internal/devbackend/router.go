// Package devbackend is a small postgres-backed implementation of the forum
// REST API. It exists so the client can be run and tested end to end without
// the production backend.
package devbackend

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/middleware"
)

// NewRouter sets up every devbackend route under /api.
func NewRouter(svc Service, secret []byte, log logrus.FieldLogger) *gin.Engine {
	db := svc.GetDB()
	auth := NewAuthHandler(db, secret)
	submissions := NewSubmissionHandler(db)
	comments := NewCommentHandler(db)
	hidden := NewHiddenHandler(db)
	users := NewUserHandler(db)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		stats := svc.Health()
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})

	api := r.Group("/api")
	api.Use(auth.Authenticate())
	{
		api.POST("/register/", auth.Register)
		api.POST("/login/", auth.Login)

		// Public reads
		api.GET("/submissions/", submissions.GetSubmissions)
		api.GET("/submissions/ask/", submissions.GetAsk)
		api.GET("/submissions/:id/", submissions.GetSubmission)
		api.GET("/comments/", comments.GetComments)
		api.GET("/comments/:id/", comments.GetComment)
		api.GET("/users/:id/", users.GetUserProfile)

		protected := api.Group("")
		protected.Use(RequireUser())
		{
			protected.POST("/submissions/", submissions.CreateSubmission)
			protected.PUT("/submissions/:id/", submissions.UpdateSubmission)
			protected.DELETE("/submissions/:id/", submissions.DeleteSubmission)
			protected.POST("/submissions/:id/vote/", submissions.VoteSubmission)
			protected.POST("/submissions/:id/addFav/", submissions.FavoriteSubmission)
			protected.GET("/submissions/favorites/", submissions.GetFavoriteSubmissions)
			protected.GET("/submissions/votes/", submissions.GetVotedSubmissions)

			protected.POST("/comments/", comments.CreateComment)
			protected.POST("/comments/:id/reply/", comments.ReplyComment)
			protected.PUT("/comments/:id/", comments.UpdateComment)
			protected.DELETE("/comments/:id/", comments.DeleteComment)
			protected.POST("/comments/:id/vote/", comments.VoteComment)
			protected.POST("/comments/:id/addFav/", comments.FavoriteComment)
			protected.GET("/comments/favorites/", comments.GetFavoriteComments)
			protected.GET("/comments/votes/", comments.GetVotedComments)

			protected.GET("/hidden/", hidden.GetHidden)
			protected.POST("/hidden/", hidden.HideSubmission)
			protected.DELETE("/hidden/:id/", hidden.UnhideSubmission)

			protected.PATCH("/users/:id/", users.UpdateUserProfile)
		}
	}

	return r
}
