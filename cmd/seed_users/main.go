// seed_users registra un usuario en la tabla users y emite un token de desarrollo.
// Los tokens de producción los emite el servicio de autenticación; esta herramienta
// solo sirve para entornos locales y pruebas manuales.
//
// Uso: go run ./cmd/seed_users <email> <admin|manager|worker> [nombre] [id]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/postgres"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/config"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/jwt"
)

const tokenExpMinutes = 12 * 60

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_users <email> <admin|manager|worker> [nombre] [id]")
		os.Exit(2)
	}
	in := dto.UpsertUserRequest{Email: os.Args[1], Role: os.Args[2]}
	if len(os.Args) > 3 {
		in.Name = os.Args[3]
	}
	if len(os.Args) > 4 {
		in.ID = os.Args[4]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "seed_users requiere STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	user, err := usecase.NewUserUseCase(postgres.NewUserRepository(pool)).Upsert(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registrar usuario: %v\n", err)
		os.Exit(1)
	}

	token, err := jwt.Generate(cfg.JWT.Secret, user.ID, user.Role, cfg.JWT.Issuer, tokenExpMinutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuario %s (%s) id=%s\n", user.Email, user.Role, user.ID)
	fmt.Printf("Authorization: Bearer %s\n", token)
}
