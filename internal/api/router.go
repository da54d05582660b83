package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contentkosh/institute-api/internal/api/handler"
	"github.com/contentkosh/institute-api/internal/api/middleware"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
	"github.com/contentkosh/institute-api/internal/core/service"
	"github.com/contentkosh/institute-api/internal/infrastructure/config"
	mongorepo "github.com/contentkosh/institute-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/contentkosh/institute-api/internal/infrastructure/db/redis"
	"github.com/contentkosh/institute-api/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("institute"))
	e.Use(requestLogger(log))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	assignmentRepo := mongorepo.NewBusinessUserRepository(db)
	businessRepo := mongorepo.NewBusinessRepository(db)
	examRepo := mongorepo.NewExamRepository(db)
	courseRepo := mongorepo.NewCourseRepository(db)
	subjectRepo := mongorepo.NewSubjectRepository(db)
	batchRepo := mongorepo.NewBatchRepository(db)
	announcementRepo := mongorepo.NewAnnouncementRepository(db)

	// --- Services ---
	codec := token.NewJWTCodec(cfg.JWTSecret, cfg.JWTTTL)
	throttle := redisinfra.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	authService := service.NewAuthService(userRepo, codec, throttle, audit, log)
	userService := service.NewUserService(userRepo, assignmentRepo, businessRepo, log)
	businessService := service.NewBusinessService(businessRepo, log)
	catalogService := service.NewCatalogService(examRepo, courseRepo, subjectRepo, businessRepo, log)
	batchService := service.NewBatchService(batchRepo, userRepo, businessRepo, audit, log)
	announcementService := service.NewAnnouncementService(announcementRepo, businessRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	businessHandler := handler.NewBusinessHandler(businessService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	batchHandler := handler.NewBatchHandler(batchService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)

	authenticate := middleware.Auth(codec, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Users ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", userHandler.Profile, authenticate)
	users.GET("/businesses", userHandler.UserBusinesses, authenticate)
	users.POST("/business", userHandler.AssignToBusiness, authenticate, adminOnly)
	users.GET("/business/:businessId/users", userHandler.BusinessUsers, authenticate)
	users.GET("/:userId/business/:businessId", userHandler.Assignment, authenticate)
	users.PUT("/:userId/business/:businessId", userHandler.UpdateAssignment, authenticate, adminOnly)
	users.DELETE("/:userId/business/:businessId", userHandler.RemoveAssignment, authenticate, adminOnly)

	// --- Business ---
	business := e.Group("/api/business", authenticate)
	business.POST("", businessHandler.Create, adminOnly)
	business.GET("/:id", businessHandler.Get)
	business.PUT("/:id", businessHandler.Update, adminOnly)
	business.DELETE("/:id", businessHandler.Delete, adminOnly)

	// --- Exams, courses, subjects ---
	exams := e.Group("/api/exams", authenticate)
	exams.POST("", catalogHandler.CreateExam, adminOnly)
	exams.GET("/:id", catalogHandler.GetExam)
	exams.GET("/:id/full", catalogHandler.GetExamWithCourses)
	exams.GET("/:id/courses", catalogHandler.CoursesByExam)
	exams.PUT("/:id", catalogHandler.UpdateExam, adminOnly)
	exams.DELETE("/:id", catalogHandler.DeleteExam, adminOnly)

	exams.POST("/courses", catalogHandler.CreateCourse, adminOnly)
	exams.GET("/courses/:id", catalogHandler.GetCourse)
	exams.GET("/courses/:id/full", catalogHandler.GetCourseWithSubjects)
	exams.GET("/courses/:id/subjects", catalogHandler.SubjectsByCourse)
	exams.PUT("/courses/:id", catalogHandler.UpdateCourse, adminOnly)
	exams.DELETE("/courses/:id", catalogHandler.DeleteCourse, adminOnly)

	exams.POST("/subjects", catalogHandler.CreateSubject, adminOnly)
	exams.GET("/subjects/:id", catalogHandler.GetSubject)
	exams.PUT("/subjects/:id", catalogHandler.UpdateSubject, adminOnly)
	exams.DELETE("/subjects/:id", catalogHandler.DeleteSubject, adminOnly)

	// --- Batches ---
	batches := e.Group("/api/batches", authenticate)
	batches.POST("", batchHandler.Create, adminOnly)
	batches.GET("/:id", batchHandler.Get)
	batches.GET("/:id/full", batchHandler.GetWithMembers)
	batches.GET("/business/:businessId", batchHandler.ByBusiness)
	batches.PUT("/:id", batchHandler.Update, adminOnly)
	batches.DELETE("/:id", batchHandler.Delete, adminOnly)

	batches.POST("/users", batchHandler.AddMember, adminOnly)
	batches.GET("/users/:userId", batchHandler.BatchesByUser)
	batches.GET("/:id/users", batchHandler.MembersByBatch)
	batches.PUT("/:id/users/:userId", batchHandler.UpdateMember, adminOnly)
	batches.DELETE("/:id/users/:userId", batchHandler.RemoveMember, adminOnly)

	// --- Announcements ---
	announcements := e.Group("/api/announcements", authenticate)
	announcements.POST("", announcementHandler.Create, adminOnly)
	announcements.GET("/:id", announcementHandler.Get)
	announcements.GET("/business/:businessId", announcementHandler.ByBusiness)
	announcements.GET("/business/:businessId/role", announcementHandler.ByRole)
	announcements.GET("/business/:businessId/range", announcementHandler.ByDateRange)
	announcements.PUT("/:id", announcementHandler.Update, adminOnly)
	announcements.DELETE("/:id", announcementHandler.Delete, adminOnly)

	return e
}

// requestLogger emits one structured line per request through the
// process-wide zerolog logger.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
