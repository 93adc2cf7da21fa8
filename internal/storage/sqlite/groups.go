package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
)

// CreateGroup persists a new group. The owner is always added as a
// member, on top of any MemberIDs already set.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	now := time.Now().Unix()
	if group.CreatedAt == 0 {
		group.CreatedAt = now
	}
	group.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapErr(err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO groups (name, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		group.Name, group.OwnerID, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", mapErr(err))
	}
	group.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}

	members := append([]int64{group.OwnerID}, group.MemberIDs...)
	for _, userID := range members {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_users (group_id, user_id) VALUES (?, ?)",
			group.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", mapErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapErr(err))
	}

	return s.loadGroupMembers(ctx, group)
}

// GetGroup retrieves a group by ID, including member IDs.
func (s *SQLiteStore) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id, created_at, updated_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt, &group.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("group %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", mapErr(err))
	}

	if err := s.loadGroupMembers(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// AddGroupMembers adds users to a group, skipping existing members.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID int64, userIDs []int64) error {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return err
	}

	for _, userID := range userIDs {
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_users (group_id, user_id) VALUES (?, ?)",
			groupID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", mapErr(err))
		}
	}
	return nil
}

func (s *SQLiteStore) loadGroupMembers(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_users WHERE group_id = ? ORDER BY user_id",
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", mapErr(err))
	}
	defer rows.Close()

	group.MemberIDs = nil
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		group.MemberIDs = append(group.MemberIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}
	return nil
}
