package main

import (
	"context"
	"log"
	"time"

	"ahorra-oink/internal/models"
	"ahorra-oink/pkg/config"
	"ahorra-oink/pkg/logger"
	"ahorra-oink/pkg/postgres"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := seedAchievements(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to seed achievements", zap.Error(err))
	}
	if err := seedDefaultCategories(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to seed default categories", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// seedAchievements inserts the achievement catalog. Existing rows are left
// untouched so reruns are safe.
func seedAchievements(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	achievements := []struct {
		name        string
		description string
		icon        string
		points      int
		condition   string
	}{
		{"LOGIN", "Inicia sesión por primera vez", "login", 5, models.AchievementLogin},
		{"FIRST_INCOME", "Registra tu primer ingreso", "coin-in", 10, models.AchievementFirstIncome},
		{"FIRST_EXPENSE", "Registra tu primer gasto", "coin-out", 10, models.AchievementFirstExpense},
		{"FIRST_SETTINGS_CHANGE", "Guarda un cambio en Configuración", "settings", 5, models.AchievementFirstSettingsChange},
		{"SAVING_METHOD_SELECTED", "Selecciona tu método de ahorro", "piggy", 10, models.AchievementSavingMethodChosen},
	}

	now := time.Now()
	for _, a := range achievements {
		query, args, err := sq.Insert("achievements").
			Columns("id", "name", "description", "icon", "points", "condition_type", "is_active", "created_at").
			Values(uuid.New(), a.name, a.description, a.icon, a.points, a.condition, true, now).
			Suffix("ON CONFLICT (name) DO NOTHING").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		tag, err := db.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			logger.Info("Seeded achievement", zap.String("name", a.name))
		}
	}
	return nil
}

// seedDefaultCategories inserts the global category catalog shared by every
// user. A NULL user_id marks a category as a system default.
func seedDefaultCategories(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	categories := []struct {
		name        string
		description string
		color       string
		icon        string
	}{
		// Gastos
		{"Alimentación", "Comida y bebidas", "#ff6b6b", "FaUtensils"},
		{"Transporte", "Transporte público, gasolina, etc.", "#4ecdc4", "FaCar"},
		{"Entretenimiento", "Ocio y diversión", "#45b7d1", "FaFilm"},
		{"Salud", "Medicina y salud", "#96ceb4", "FaHeart"},
		{"Educación", "Libros, cursos, etc.", "#ffeaa7", "FaBook"},
		{"Vivienda", "Alquiler, servicios, etc.", "#dfe6e9", "FaHome"},
		{"Otros", "Otros gastos", "#74b9ff", "FaEllipsisH"},
		// Ingresos
		{"Salario", "Ingreso mensual", "#00b894", "FaDollarSign"},
		{"Freelance", "Trabajos independientes", "#6c5ce7", "FaBriefcase"},
		{"Inversiones", "Rendimientos de inversiones", "#fd79a8", "FaChartLine"},
		{"Ventas", "Venta de productos", "#fdcb6e", "FaShoppingCart"},
		{"Bonificaciones", "Bonos y extras", "#e17055", "FaGift"},
		{"Otros ingresos", "Otros ingresos", "#00cec9", "FaMoneyBillWave"},
		// Ahorros
		{"Fondo de emergencia", "Ahorro para emergencias", "#d63031", "FaExclamationTriangle"},
		{"Vacaciones", "Ahorro para viajes", "#0984e3", "FaPlane"},
		{"Casa", "Ahorro para vivienda", "#00b894", "FaHome"},
		{"Coche", "Ahorro para vehículo", "#636e72", "FaCar"},
		{"Retiro", "Ahorro para jubilación", "#a29bfe", "FaPiggyBank"},
		{"Otros ahorros", "Otros ahorros", "#55efc4", "FaWallet"},
	}

	now := time.Now()
	for _, c := range categories {
		query, args, err := sq.Insert("categories").
			Columns("id", "user_id", "name", "description", "color", "icon", "is_default", "created_at", "updated_at").
			Values(uuid.New(), nil, c.name, c.description, c.color, c.icon, true, now, now).
			Suffix("ON CONFLICT DO NOTHING").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		tag, err := db.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			logger.Info("Seeded category", zap.String("name", c.name))
		}
	}
	return nil
}
