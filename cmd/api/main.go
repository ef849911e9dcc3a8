package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/identity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/Restaurante-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/internal/observability"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("identity", cfg.Identity.Provider).
		Msg("iniciando aplicación")

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("restaurante")
	}

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, cfg.App.Name, cfg.Mongo, metrics, log.Component("mongo"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("índices de MongoDB")
	}

	repoLog := log.Component("repository")
	repoOpts := func(extra ...mongodb.Option) []mongodb.Option {
		return append([]mongodb.Option{mongodb.WithLogger(repoLog), mongodb.WithMetrics(metrics)}, extra...)
	}
	userRepo := mongodb.NewRepository[entity.User](mongodb.NewCollection(db, mongodb.CollUsers), "User", repoOpts(mongodb.WithHiddenFields("externalId"))...)
	ingredientRepo := mongodb.NewRepository[entity.Ingredient](mongodb.NewCollection(db, mongodb.CollIngredients), "Ingredient", repoOpts()...)
	dishRepo := mongodb.NewRepository[entity.Dish](mongodb.NewCollection(db, mongodb.CollDishes), "Dish", repoOpts()...)
	cardRepo := mongodb.NewRepository[entity.Card](mongodb.NewCollection(db, mongodb.CollCards), "Card", repoOpts()...)
	orderRepo := mongodb.NewRepository[entity.Order](mongodb.NewCollection(db, mongodb.CollOrders), "Order", repoOpts()...)

	// Proveedor de identidad: OIDC externo o local (cuentas en la colección accounts).
	authLog := log.Component("auth")
	var (
		verifier ports.TokenVerifier
		accounts ports.AccountManager
		local    *identity.LocalProvider
	)
	switch cfg.Identity.Provider {
	case config.IdentityOIDC:
		oidcVerifier, err := identity.NewOIDCVerifier(ctx, cfg.Identity.IssuerURL, cfg.Identity.ClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("proveedor OIDC")
		}
		verifier = oidcVerifier
	default:
		local, err = newLocalProvider(db, cfg, repoOpts, authLog)
		if err != nil {
			log.Fatal().Err(err).Msg("proveedor de identidad local")
		}
		verifier, accounts = local, local
	}

	userUC := usecase.NewUserUseCase(userRepo, accounts, log.Component("users"))
	ingredientUC := usecase.NewIngredientUseCase(ingredientRepo)
	dishUC := usecase.NewDishUseCase(dishRepo, ingredientRepo)
	cardUC := usecase.NewCardUseCase(cardRepo, dishUC)
	orderUC := usecase.NewOrderUseCase(orderRepo, dishRepo, userRepo, infrapdf.NewBillGenerator(), cfg.App.Name, log.Component("orders"))

	var authUC *auth.AuthUseCase
	if local != nil {
		authUC = auth.NewAuthUseCase(local, userRepo, authLog)
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:            cfg.App.Name,
		Production:      cfg.App.IsProduction(),
		RateLimitMax:    cfg.HTTP.RateLimitMax,
		RateLimitWindow: cfg.HTTP.RateLimitWindow,
		Metrics:         metrics,
		Log:             log.Component("http"),
	})
	httpRouter.Router(app, httpRouter.RouterDeps{
		Verifier:     verifier,
		Principals:   userUC,
		AuthUC:       authUC,
		UserUC:       userUC,
		IngredientUC: ingredientUC,
		DishUC:       dishUC,
		CardUC:       cardUC,
		OrderUC:      orderUC,
		Log:          authLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newLocalProvider(db *mongo.Database, cfg *config.Config, repoOpts func(...mongodb.Option) []mongodb.Option, log zerolog.Logger) (*identity.LocalProvider, error) {
	accountRepo := mongodb.NewRepository[identity.Account](
		mongodb.NewCollection(db, mongodb.CollAccounts), "Account",
		repoOpts(mongodb.WithHiddenFields(identity.HiddenAccountFields...))...,
	)
	return identity.NewLocalProvider(accountRepo, identity.LocalConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log)
}
