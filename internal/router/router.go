package router

import (
	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/middleware"
	"foodzippy/backend/internal/pkg/config"
	"foodzippy/backend/internal/pkg/repository/postgresql"
	"foodzippy/backend/internal/service"

	"foodzippy/backend/internal/repository/postgres/attendance"
	"foodzippy/backend/internal/repository/postgres/restaurant"
	"foodzippy/backend/internal/repository/postgres/user"

	attendance_controller "foodzippy/backend/internal/controller/http/v1/attendance"
	auth_controller "foodzippy/backend/internal/controller/http/v1/auth"
	"foodzippy/backend/internal/controller/http/v1/file"
	restaurant_controller "foodzippy/backend/internal/controller/http/v1/restaurant"
	user_controller "foodzippy/backend/internal/controller/http/v1/user"

	"github.com/redis/go-redis/v9"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		cfg,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORS())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	restaurantPostgres := restaurant.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.cfg.FullDayMinutes)

	uploader := service.NewDiskUploader(r.cfg.BaseURL)

	// controller
	authController := auth_controller.NewController(userPostgres, r.redisDB, r.cfg)
	restaurantController := restaurant_controller.NewController(restaurantPostgres, uploader)
	userController := user_controller.NewController(userPostgres, r.cfg.BaseURL)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	fileController := file.NewController()

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/admin/sign-in", authController.AdminSignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #media
	r.GET("/media/*filepath", fileController.File)
	r.HEAD("/media/*filepath", fileController.File)

	// #vendor
	r.Post("/api/v1/vendor/register", restaurantController.Register, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))
	r.Get("/api/v1/vendor/list", restaurantController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/vendor/analytics", restaurantController.GetAnalytics, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/vendor/:id", restaurantController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/vendor/:id", restaurantController.Update, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/vendor/:id/status", restaurantController.UpdateStatus, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/vendor/:id/edit-request", restaurantController.RaiseEditRequest, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))

	// #edit-request
	r.Get("/api/v1/edit-request/list", restaurantController.GetPendingEditRequests, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/edit-request/unread-count", restaurantController.GetUnreadEditCount, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/edit-request/:id/approve", restaurantController.ApproveEdit, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/edit-request/:id/reject", restaurantController.RejectEdit, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/edit-request/:id/seen", restaurantController.MarkEditSeen, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))
	r.Post("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))
	r.Get("/api/v1/attendance/my", attendanceController.GetMy, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))
	r.Get("/api/v1/attendance/today", attendanceController.GetToday, middleware.Authenticate(r.auth, auth.RoleAgent, auth.RoleEmployee))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/export", attendanceController.Export, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/report/:id", attendanceController.GetAgentReport, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/attendance/agent/:id", attendanceController.GetByAgent, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #agent accounts
	r.Get("/api/v1/agent/list", userController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/agent/:id", userController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/agent/create", userController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/agent/:id", userController.Update, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/agent/:id", userController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/agent/:id/qrcode", userController.GetBadge, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
