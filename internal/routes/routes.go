package routes

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/auth"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/dog"
	"github.com/BruksfildServices01/daycare-scheduler/internal/handlers"
	"github.com/BruksfildServices01/daycare-scheduler/internal/media"
	"github.com/BruksfildServices01/daycare-scheduler/internal/middleware"
	"github.com/BruksfildServices01/daycare-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/timezone"
	ucAccount "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/account"
	ucAuditLog "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/auditlog"
	ucBooking "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/catalog"
	ucDog "github.com/BruksfildServices01/daycare-scheduler/internal/usecase/dog"
)

// Store is everything the API persists; GormStore and MemoryStore both
// satisfy it.
type Store interface {
	account.Repository
	dog.Repository
	catalog.Repository
	booking.Repository
	audit.Store
}

type Deps struct {
	Store  Store
	Tokens *auth.TokenIssuer
	Clock  timezone.Clock
	Audit  *audit.Dispatcher

	// Optional; nil disables the feature.
	LoginLimiter ratelimit.Limiter
	Objects      media.ObjectStore
	EmailDomains ucAccount.DomainChecker
	Health       map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	useJSONFieldNames()

	// ======================================================
	// USE CASES
	// ======================================================
	signupUC := ucAccount.NewSignup(d.Store, d.Tokens, d.EmailDomains, d.Audit)
	loginUC := ucAccount.NewLogin(d.Store, d.Tokens, d.Audit)
	usersUC := ucAccount.NewUsers(d.Store, d.Audit)

	dogsUC := ucDog.NewDogs(d.Store, d.Audit)
	photoUC := ucDog.NewUploadPhoto(dogsUC, d.Objects)

	servicesUC := ucCatalog.NewServices(d.Store, d.Audit)

	bookingUC := handlers.BookingUseCases{
		Create:        ucBooking.NewCreateBooking(d.Store, d.Audit, d.Clock),
		CreatePending: ucBooking.NewCreatePendingBooking(d.Store, d.Audit, d.Clock),
		Update:        ucBooking.NewUpdateBooking(d.Store, d.Audit, d.Clock),
		UpdateStatus:  ucBooking.NewUpdateBookingStatus(d.Store, d.Audit),
		Delete:        ucBooking.NewDeleteBooking(d.Store, d.Audit),
		Get:           ucBooking.NewGetBooking(d.Store),
		List:          ucBooking.NewListBookings(d.Store),
		Attach:        ucBooking.NewAttachServices(d.Store, d.Audit),
		Summary:       ucBooking.NewGetServicesSummary(d.Store),
	}

	auditLogsUC := ucAuditLog.NewListAuditLogs(d.Store)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Health)
	authHandler := handlers.NewAuthHandler(signupUC, loginUC)
	usersHandler := handlers.NewUsersHandler(usersUC)
	dogsHandler := handlers.NewDogsHandler(dogsUC, photoUC)
	servicesHandler := handlers.NewServicesHandler(servicesUC)
	bookingsHandler := handlers.NewBookingsHandler(bookingUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogsUC)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", healthHandler.Health)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimit(d.LoginLimiter))
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// ======================================================
	// API (Bearer token)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Tokens))
	{
		api.GET("/users/me", usersHandler.Me)
		api.GET("/users", usersHandler.List)
		api.POST("/users", usersHandler.Create)
		api.GET("/users/:id", usersHandler.Get)
		api.PUT("/users/:id", usersHandler.Update)
		api.DELETE("/users/:id", usersHandler.Delete)

		api.GET("/dogs", dogsHandler.List)
		api.POST("/dogs", dogsHandler.Create)
		api.GET("/dogs/:id", dogsHandler.Get)
		api.PUT("/dogs/:id", dogsHandler.Update)
		api.DELETE("/dogs/:id", dogsHandler.Delete)
		api.PUT("/dogs/:id/photo", dogsHandler.UploadPhoto)

		api.GET("/services", servicesHandler.List)
		api.POST("/services", servicesHandler.Create)
		api.GET("/services/:id", servicesHandler.Get)
		api.PUT("/services/:id", servicesHandler.Update)
		api.DELETE("/services/:id", servicesHandler.Delete)

		api.GET("/bookings", bookingsHandler.List)
		api.POST("/bookings", bookingsHandler.Create)
		api.POST("/bookings/pending", bookingsHandler.CreatePending)
		api.GET("/bookings/:id", bookingsHandler.Get)
		api.PUT("/bookings/:id", bookingsHandler.Update)
		api.DELETE("/bookings/:id", bookingsHandler.Delete)
		api.PATCH("/bookings/:id/status", bookingsHandler.UpdateStatus)
		api.GET("/bookings/:id/services", bookingsHandler.Services)
		api.PUT("/bookings/:id/services", bookingsHandler.AttachServices)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}

// useJSONFieldNames makes binding errors name fields as clients send them.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}
