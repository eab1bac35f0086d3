// Command seed loads development data: the default super admin, the base
// categories, and a batch of demo orders built from whatever users and
// products already exist.
package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/config"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/observability"
	"github.com/spec-kit/shop-admin-service/internal/persistence"
	"github.com/spec-kit/shop-admin-service/internal/repository"
)

const (
	seedAdminEmail    = "admin@demo.com"
	seedAdminPassword = "admin123"
	demoOrderCount    = 20
)

var seedCategories = []string{"Electronics", "Clothing", "Books", "Home & Garden"}

var orderStatuses = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusShipped,
	domain.OrderStatusDelivered,
	domain.OrderStatusCancelled,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)

	if err := seedSuperAdmin(ctx, users, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed super admin", zap.Error(err))
	}

	for _, name := range seedCategories {
		if _, err := pool.Exec(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			logger.Fatal("failed to seed category", zap.String("name", name), zap.Error(err))
		}
	}
	logger.Info("categories configured", zap.Int("count", len(seedCategories)))

	if err := seedDemoOrders(ctx, pool, logger); err != nil {
		logger.Fatal("failed to seed orders", zap.Error(err))
	}
}

func seedSuperAdmin(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	if _, err := users.GetByEmail(ctx, seedAdminEmail); err == nil {
		logger.Info("super admin already present", zap.String("email", seedAdminEmail))
		return nil
	} else if err != pgx.ErrNoRows {
		return err
	}

	hash, err := auth.HashPassword(seedAdminPassword, bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        seedAdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("super admin configured", zap.String("email", seedAdminEmail))
	return nil
}

func seedDemoOrders(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var existing int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		logger.Info("orders already present; skipping demo orders", zap.Int64("count", existing))
		return nil
	}

	users := repository.NewUserRepository(pool)
	products := repository.NewProductRepository(pool)

	allUsers, err := users.List(ctx)
	if err != nil {
		return err
	}
	allProducts, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(allUsers) == 0 || len(allProducts) == 0 {
		logger.Warn("skipping demo orders: need at least one user and one product")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < demoOrderCount; i++ {
		user := allUsers[rng.Intn(len(allUsers))]
		picked := pickProducts(rng, allProducts)

		total := decimal.Zero
		for _, p := range picked {
			total = total.Add(p.Price)
		}

		status := orderStatuses[rng.Intn(len(orderStatuses))]
		createdAt := time.Now().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

		var orderID string
		if err := pool.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, total, created_at)
             VALUES ($1, $2, $3, $4) RETURNING id`,
			user.ID, status, total, createdAt,
		).Scan(&orderID); err != nil {
			return err
		}

		for _, p := range picked {
			if _, err := pool.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, name, price, quantity)
                 VALUES ($1, $2, $3, $4, 1)`,
				orderID, p.ID, p.Name, p.Price,
			); err != nil {
				return err
			}
		}
	}

	logger.Info("demo orders generated", zap.Int("count", demoOrderCount))
	return nil
}

// pickProducts selects one to three distinct products.
func pickProducts(rng *rand.Rand, products []domain.Product) []domain.Product {
	shuffled := append([]domain.Product{}, products...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := rng.Intn(3) + 1
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
