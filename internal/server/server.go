package server

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/internal/apikey"
	apikeydomain "github.com/openshelf/openshelf/internal/apikey/domain"
	"github.com/openshelf/openshelf/internal/auth"
	authdomain "github.com/openshelf/openshelf/internal/auth/domain"
	"github.com/openshelf/openshelf/internal/authorization"
	"github.com/openshelf/openshelf/internal/book"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
	"github.com/openshelf/openshelf/internal/borrow"
	borrowdomain "github.com/openshelf/openshelf/internal/borrow/domain"
	"github.com/openshelf/openshelf/internal/clock"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/permission"
	"github.com/openshelf/openshelf/internal/seed"
	"github.com/openshelf/openshelf/internal/token"
	"github.com/openshelf/openshelf/internal/user"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	token.Module,
	authorization.Module,
	auth.Module,
	apikey.Module,
	user.Module,
	book.Module,
	borrow.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine    *gin.Engine
	log       *zap.Logger
	cfg       config.Config
	authSvc   authdomain.Service
	authzSvc  *authorization.Service
	userSvc   userdomain.Service
	bookSvc   bookdomain.Service
	borrowSvc borrowdomain.Service
	apiKeySvc apikeydomain.Service
}

type ServerParams struct {
	fx.In

	Engine    *gin.Engine
	Log       *zap.Logger
	Cfg       config.Config
	AuthSvc   authdomain.Service
	AuthzSvc  *authorization.Service
	UserSvc   userdomain.Service
	BookSvc   bookdomain.Service
	BorrowSvc borrowdomain.Service
	APIKeySvc apikeydomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:    p.Engine,
		log:       p.Log.Named("http.server"),
		cfg:       p.Cfg,
		authSvc:   p.AuthSvc,
		authzSvc:  p.AuthzSvc,
		userSvc:   p.UserSvc,
		bookSvc:   p.BookSvc,
		borrowSvc: p.BorrowSvc,
		apiKeySvc: p.APIKeySvc,
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/refresh", s.Refresh)

	protected := api.Group("")
	protected.Use(s.AuthRequired())

	protected.GET("/users/me", s.CurrentUser)

	protected.GET("/users", s.RequirePermissions(permission.MemberRead), s.ListUsers)
	protected.POST("/users", s.RequirePermissions(permission.MemberCreate), s.CreateUser)
	protected.GET("/users/:id", s.RequirePermissions(permission.MemberRead), s.GetUser)
	protected.PATCH("/users/:id", s.RequirePermissions(permission.MemberUpdate), s.UpdateUser)
	protected.DELETE("/users/:id", s.RequirePermissions(permission.MemberDelete), s.DeleteUser)

	protected.GET("/roles", s.RequirePermissions(permission.RoleManage), s.ListRoles)

	protected.GET("/books", s.RequirePermissions(permission.BookRead), s.ListBooks)
	protected.POST("/books", s.RequirePermissions(permission.BookCreate), s.CreateBook)
	protected.GET("/books/:id", s.RequirePermissions(permission.BookRead), s.GetBook)
	protected.PATCH("/books/:id", s.RequirePermissions(permission.BookUpdate), s.UpdateBook)
	protected.DELETE("/books/:id", s.RequirePermissions(permission.BookDelete), s.DeleteBook)

	protected.GET("/borrows", s.RequirePermissions(permission.BorrowRead), s.ListBorrows)
	protected.POST("/borrows", s.RequirePermissions(permission.BorrowCreate), s.BorrowBook)
	protected.POST("/borrows/:id/return", s.RequirePermissions(permission.BorrowReturn), s.ReturnBorrow)

	protected.GET("/api-keys", s.ListAPIKeys)
	protected.POST("/api-keys", s.CreateAPIKey)
	protected.DELETE("/api-keys/:id", s.RevokeAPIKey)
}

type runParams struct {
	fx.In

	LC     fx.Lifecycle
	Engine *gin.Engine
	Log    *zap.Logger
	Cfg    config.Config
	DB     *gorm.DB
	GenID  *snowflake.Node
	Clock  clock.Clock
}

func run(p runParams) {
	srv := &http.Server{
		Addr:    p.Cfg.ListenAddr,
		Handler: p.Engine,
	}

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seed.Migrate(p.DB); err != nil {
				return err
			}
			if err := seed.Roles(p.DB, p.GenID, p.Clock); err != nil {
				return err
			}
			if err := seed.Admin(p.DB, p.GenID, p.Clock, p.Cfg); err != nil {
				return err
			}

			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					p.Log.Error("http server stopped", zap.Error(err))
				}
			}()
			p.Log.Info("http server listening", zap.String("addr", p.Cfg.ListenAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
