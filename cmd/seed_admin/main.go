// seed_admin crea el primer administrador del restaurante. Con el proveedor local crea
// también la cuenta; con OIDC enlaza una identidad existente mediante -external-id.
//
// Uso: go run ./cmd/seed_admin -email admin@restaurante.co -name "Administrador" -password ...
// Falla si ya existe un usuario con rol admin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/identity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func main() {
	var in dto.CreateUserRequest
	flag.StringVar(&in.Email, "email", "", "correo del administrador")
	flag.StringVar(&in.Name, "name", "Administrador", "nombre del administrador")
	flag.StringVar(&in.Password, "password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña (proveedor local)")
	flag.StringVar(&in.ExternalID, "external-id", "", "subject del proveedor OIDC")
	flag.Parse()

	if in.Email == "" {
		fmt.Fprintln(os.Stderr, "-email es obligatorio")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed_admin"})

	ctx := context.Background()
	client, err := mongodb.NewClient(ctx, "seed_admin", cfg.Mongo, nil, log.Component("mongo"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("índices de MongoDB")
	}

	users := mongodb.NewRepository[entity.User](mongodb.NewCollection(db, mongodb.CollUsers), "User",
		mongodb.WithHiddenFields("externalId"), mongodb.WithLogger(log.Component("repository")))

	var accounts ports.AccountManager
	if cfg.Identity.Provider == config.IdentityLocal && in.ExternalID == "" {
		accountRepo := mongodb.NewRepository[identity.Account](mongodb.NewCollection(db, mongodb.CollAccounts), "Account",
			mongodb.WithHiddenFields(identity.HiddenAccountFields...), mongodb.WithLogger(log.Component("repository")))
		local, err := identity.NewLocalProvider(accountRepo, identity.LocalConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		}, log.Component("auth"))
		if err != nil {
			log.Fatal().Err(err).Msg("proveedor de identidad local")
		}
		accounts = local
	}

	admin, err := usecase.NewUserUseCase(users, accounts, log.Component("users")).BootstrapAdmin(ctx, in)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
}
