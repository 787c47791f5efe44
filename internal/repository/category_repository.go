package repository

import (
	"context"
	"errors"

	"ahorra-oink/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var categoryColumns = []string{
	"id", "user_id", "name", "description", "color", "icon", "is_default",
	"created_at", "updated_at",
}

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	query := squirrel.Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.UserID, category.Name, category.Description,
			category.Color, category.Icon, category.IsDefault,
			category.CreatedAt, category.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return models.ErrCategoryExists
	}
	return err
}

// FindByNameForUser returns nil without error when no match exists.
func (r *CategoryRepository) FindByNameForUser(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	return r.findOne(ctx, squirrel.Eq{"user_id": userID, "name": name})
}

// FindDefaultByName returns nil without error when no global default with
// that name exists.
func (r *CategoryRepository) FindDefaultByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, squirrel.Eq{"user_id": nil, "is_default": true, "name": name})
}

func (r *CategoryRepository) findOne(ctx context.Context, pred squirrel.Eq) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(pred).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var category models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&category.ID, &category.UserID, &category.Name, &category.Description,
		&category.Color, &category.Icon, &category.IsDefault,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListForUser returns the user's own categories plus the global defaults.
func (r *CategoryRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID},
			squirrel.Eq{"user_id": nil, "is_default": true},
		}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID, &category.UserID, &category.Name, &category.Description,
			&category.Color, &category.Icon, &category.IsDefault,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

// GetByID returns nil without error when no category matches.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}
