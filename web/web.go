// Package web provides the HTTP server of the review API: engine setup,
// middleware, controller wiring and lifecycle.
package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"reviewhub/config"
	"reviewhub/logger"
	"reviewhub/web/controller"
	"reviewhub/web/middleware"
	"reviewhub/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Server is the API server with its controllers and lifecycle handles.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth       *controller.AuthController
	users      *controller.UserController
	categories *controller.CategoryController
	genres     *controller.GenreController
	titles     *controller.TitleController
	reviews    *controller.ReviewController
	comments   *controller.CommentController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// Router builds the gin engine with middleware and all controllers
// registered. Exposed for tests that drive the API in-process.
func (s *Server) Router() *gin.Engine {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	// Unregistered methods on known paths (e.g. PUT on /titles/{id})
	// answer 405 instead of 404.
	engine.HandleMethodNotAllowed = true

	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Auth())

	api := engine.Group(config.GetBasePath())
	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": config.GetVersion()})
	})

	mail := service.NewSenderFromConfig()
	s.auth = controller.NewAuthController(api, mail)
	s.users = controller.NewUserController(api)
	s.categories = controller.NewCategoryController(api)
	s.genres = controller.NewGenreController(api)
	s.titles = controller.NewTitleController(api)
	s.reviews = controller.NewReviewController(api)
	s.comments = controller.NewCommentController(api)

	return engine
}

func (s *Server) Start() error {
	engine := s.Router()

	listener, err := net.Listen("tcp", config.GetListen())
	if err != nil {
		return err
	}
	s.listener = listener

	logger.Infof("%s %s serving on %s", config.GetName(), config.GetVersion(), listener.Addr())

	s.httpServer = &http.Server{Handler: engine}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error:", err)
		}
	}()
	return nil
}

func (s *Server) Stop() error {
	s.cancel()
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
