package handlers

import (
	"github.com/finledger/bookkeeping_backend/cmd/docs"
	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	portssvc "github.com/finledger/bookkeeping_backend/internal/core/ports/services"
	"github.com/finledger/bookkeeping_backend/internal/middleware"
	"github.com/finledger/bookkeeping_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators(cfg)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerHomeRoutes(r)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
) {
	// Every v1 operation stamps an actor, so the header is mandatory here
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, service.Account)
	registerPeriodRoutes(v1, service.Period)
	registerFxRateRoutes(v1, service.FxRate)
	registerJournalRoutes(v1, service.Journal)
}

// registerCustomValidators wires the currencycode binding tag to the
// configured currency set.
func registerCustomValidators(cfg *config.Config) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	currencies := domain.NewCurrencySet(cfg.SupportedCurrencies)
	v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return currencies.Contains(fl.Field().String())
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
