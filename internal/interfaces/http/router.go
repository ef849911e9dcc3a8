package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/observability"
)

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name            string
	Production      bool
	RateLimitMax    int
	RateLimitWindow time.Duration
	Metrics         *observability.Metrics
	Log             zerolog.Logger
}

// NewApp crea la aplicación Fiber con el traductor global de errores y los middlewares
// comunes: recover, request id, cabeceras de seguridad, métricas y límite de peticiones.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(cfg.Log, cfg.Production),
	})
	app.Use(cfg.Metrics.Middleware())
	app.Use(Recover())
	app.Use(requestid.New())
	app.Use(helmet.New())
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Verifier     ports.TokenVerifier
	Principals   ports.PrincipalResolver
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	IngredientUC *usecase.IngredientUseCase
	DishUC       *usecase.DishUseCase
	CardUC       *usecase.CardUseCase
	OrderUC      *usecase.OrderUseCase
	Log          zerolog.Logger
}

// Roles con acceso a la gestión del restaurante.
var (
	managementRoles = []entity.Role{entity.RoleManager, entity.RoleOwner, entity.RoleAdmin}
	kitchenRoles    = []entity.Role{entity.RoleKitchenStaff, entity.RoleManager, entity.RoleOwner, entity.RoleAdmin}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Verifier, deps.Principals, deps.Log))

	// Users: la gestión exige rol de gestión salvo /me y el detalle propio.
	users := protected.Group("/users")
	usersMeta := RoleMetadata{Class: managementRoles}
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", Authorize(usersMeta), userHandler.List)
	users.Post("/", Authorize(usersMeta), userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/role", Authorize(usersMeta), userHandler.ChangeRole)
	users.Patch("/:id/active", Authorize(usersMeta), userHandler.SetActive)
	users.Delete("/:id", Authorize(usersMeta.WithMethod(entity.RoleAdmin)), userHandler.Delete)

	menu := NewMenuHandler(deps.IngredientUC, deps.DishUC, deps.CardUC)

	// Ingredients: lectura para todo el personal, escritura para cocina y gestión.
	ingredients := protected.Group("/ingredients")
	ingredientsMeta := RoleMetadata{Class: kitchenRoles}
	ingredients.Get("/", Authorize(ingredientsMeta), menu.ListIngredients)
	ingredients.Get("/:id", Authorize(ingredientsMeta), menu.GetIngredient)
	ingredients.Post("/", Authorize(ingredientsMeta.WithMethod(managementRoles...)), menu.CreateIngredient)
	ingredients.Patch("/:id/stock", Authorize(ingredientsMeta), menu.UpdateStock)
	ingredients.Delete("/:id", Authorize(ingredientsMeta.WithMethod(managementRoles...)), menu.DeleteIngredient)

	// Dishes: lectura para cualquier usuario autenticado.
	dishes := protected.Group("/dishes")
	dishesMeta := RoleMetadata{Class: managementRoles}
	dishes.Get("/", menu.ListDishes)
	dishes.Get("/:id", menu.GetDish)
	dishes.Post("/", Authorize(dishesMeta), menu.CreateDish)
	dishes.Patch("/:id/availability", Authorize(dishesMeta.WithMethod(kitchenRoles...)), menu.SetDishAvailability)
	dishes.Delete("/:id", Authorize(dishesMeta), menu.DeleteDish)

	// Cards
	cards := protected.Group("/cards")
	cardsMeta := RoleMetadata{Class: managementRoles}
	cards.Get("/", menu.ListCards)
	cards.Get("/:id", menu.GetCard)
	cards.Post("/", Authorize(cardsMeta), menu.CreateCard)
	cards.Post("/:id/dishes", Authorize(cardsMeta), menu.AddDish)
	cards.Delete("/:id/dishes/:dishId", Authorize(cardsMeta), menu.RemoveDish)
	cards.Delete("/:id", Authorize(cardsMeta), menu.DeleteCard)

	// Orders: cualquier rol; el caso de uso aplica el permiso de cada transición.
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/bill", orderHandler.Bill)
	orders.Post("/:id/:action", orderHandler.Transition)
}
