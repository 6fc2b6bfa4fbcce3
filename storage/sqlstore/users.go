package sqlstore

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
)

type userStore struct{ db *gorm.DB }

func (s *userStore) Get(ctx context.Context, id int) (*storage.User, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("user %d", id))
	}
	return row.record(), nil
}

func (s *userStore) GetAll(ctx context.Context) ([]*storage.User, error) {
	return s.find(ctx, s.db.WithContext(ctx).Order("id"), "list users")
}

func (s *userStore) GetByLogin(ctx context.Context, login string) (*storage.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		Order("id").
		First(&row).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %q", login))
	}
	return row.record(), nil
}

func (s *userStore) ListByTeam(ctx context.Context, teamID int) ([]*storage.User, error) {
	return s.find(ctx, s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id"), "list team users")
}

func (s *userStore) find(_ context.Context, q *gorm.DB, what string) ([]*storage.User, error) {
	var rows []userRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, what)
	}
	users := make([]*storage.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].record())
	}
	return users, nil
}

func (s *userStore) conflict(ctx context.Context, user *storage.User) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&userRow{}).
		Where("id <> ? AND (username = ? OR LOWER(email) = LOWER(?))", user.ID, user.Username, user.Email).
		Count(&n).Error
	if err != nil {
		return translate(err, "check user uniqueness")
	}
	if n > 0 {
		return fmt.Errorf("%w: username %q or email %q", storage.ErrAlreadyExists, user.Username, user.Email)
	}
	return nil
}

func (s *userStore) Create(ctx context.Context, user *storage.User) error {
	user.ID = 0
	if err := s.conflict(ctx, user); err != nil {
		return err
	}
	row := userToRow(user)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, fmt.Sprintf("create user %q", user.Username))
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

func (s *userStore) Update(ctx context.Context, user *storage.User) error {
	if err := s.conflict(ctx, user); err != nil {
		return err
	}
	return update(ctx, s.db, userToRow(user), user.ID, fmt.Sprintf("user %d", user.ID), "id", "created_at")
}

func (s *userStore) Delete(ctx context.Context, id int) error {
	return affected(s.db.WithContext(ctx).Delete(&userRow{}, id), fmt.Sprintf("user %d", id))
}
