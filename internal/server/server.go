package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/config"
	"github.com/emilythestrangee/hackernews-client/internal/handlers"
	"github.com/emilythestrangee/hackernews-client/internal/middleware"
	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type Server struct {
	cfg      *config.Config
	handler  *handlers.Handler
	session  *session.Session
	gatherer prometheus.Gatherer
	log      logrus.FieldLogger
}

// NewServer wires the screens to the backend client and the session.
func NewServer(cfg *config.Config, api screens.Backend, sess *session.Session, gatherer prometheus.Gatherer, log logrus.FieldLogger) *Server {
	return &Server{
		cfg:      cfg,
		handler:  handlers.NewHandler(api, sess, log),
		session:  sess,
		gatherer: gatherer,
		log:      log,
	}
}

// HTTPServer wraps the router in an http.Server listening on cfg.Port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close unmounts the open screens.
func (s *Server) Close() {
	s.handler.Close()
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.log))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAny(s.cfg.AllowedOrigins()),
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": s.cfg.BackendURL})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	h := s.handler
	api := r.Group("/api")
	{
		api.GET("/session", h.Session.GetSession)
		api.POST("/session", h.Session.Login)
		api.DELETE("/session", h.Session.Logout)

		// Public reads
		api.GET("/feed", h.Feed.GetFeed)
		api.GET("/ask", h.Feed.GetAsk)
		api.GET("/submissions/:id", h.Submission.GetSubmission)
		api.GET("/comments", h.Comment.GetComments)
		api.GET("/comments/:id", h.Comment.GetComment)
		api.GET("/users/:id", h.User.GetUserProfile)

		// Viewer routes
		protected := api.Group("")
		protected.Use(middleware.RequireViewer(s.session))
		{
			protected.POST("/feed/:id/hide", h.Feed.Hide)
			protected.DELETE("/feed/:id/hide", h.Feed.Unhide)
			protected.GET("/hidden", h.Feed.GetHidden)
			protected.DELETE("/hidden/:id", h.Feed.RestoreHidden)

			protected.POST("/submissions", h.Submission.CreateSubmission)
			protected.PUT("/submissions/:id", h.Submission.UpdateSubmission)
			protected.DELETE("/submissions/:id", h.Submission.DeleteSubmission)
			protected.POST("/submissions/:id/vote", h.Submission.VoteSubmission(h.Feed.Screen()))
			protected.POST("/submissions/:id/favorite", h.Submission.FavoriteSubmission(h.Feed.Screen()))
			protected.POST("/submissions/:id/comments", h.Submission.CreateComment)

			protected.PUT("/comments/:id", h.Comment.UpdateComment)
			protected.DELETE("/comments/:id", h.Comment.DeleteComment)
			protected.POST("/comments/:id/vote", h.Comment.VoteComment)
			protected.POST("/comments/:id/favorite", h.Comment.FavoriteComment)
			protected.POST("/comments/:id/reply", h.Comment.ReplyComment)

			protected.GET("/me", h.User.GetActivity)
			protected.GET("/me/favorites/submissions", h.Feed.GetFavoriteSubmissions)
			protected.GET("/me/favorites/comments", h.Comment.GetFavoriteComments)
			protected.GET("/me/upvoted/submissions", h.Feed.GetUpvotedSubmissions)
			protected.GET("/me/upvoted/comments", h.Comment.GetUpvotedComments)

			protected.PATCH("/users/:id", h.User.UpdateUserProfile)
		}
	}

	return r
}

func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
