package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"spendtrack/internal/config"
	"spendtrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	expenseHandler *handler.ExpenseHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register/", authHandler.Register)
	e.POST("/token/", authHandler.Token)
	e.POST("/token/refresh/", authHandler.Refresh)
	e.POST("/token/logout/", authHandler.Logout)

	// Trends and breakdown are system-wide and unauthenticated.
	e.GET("/spending-trends/:period/", reportHandler.Trends)
	e.GET("/category-breakdown/:period/", reportHandler.Breakdown)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/expenses/", expenseHandler.List)
	secured.POST("/expenses/", expenseHandler.Create)
	secured.PUT("/expenses/:id/", expenseHandler.Update)
	secured.DELETE("/expenses/:id/", expenseHandler.Delete)
	secured.GET("/expense-summary/", reportHandler.Summary)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
