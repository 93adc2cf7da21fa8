package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/divvy/internal/models"
)

// ListCategories returns all categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, is_default FROM categories ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", mapErr(err))
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// CreateCategory persists a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, is_default) VALUES (?, ?)",
		category.Name, category.IsDefault,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", mapErr(err))
	}

	category.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	return nil
}
