package sqlstore

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
)

type teamStore struct{ db *gorm.DB }

func (s *teamStore) Get(ctx context.Context, id int) (*storage.Team, error) {
	var row teamRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("team %d", id))
	}
	return row.record(), nil
}

func (s *teamStore) GetAll(ctx context.Context) ([]*storage.Team, error) {
	var rows []teamRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		logging.Log.Errorf("TEAM: list failed: %v", err)
		return nil, translate(err, "list teams")
	}
	teams := make([]*storage.Team, 0, len(rows))
	for i := range rows {
		teams = append(teams, rows[i].record())
	}
	return teams, nil
}

func (s *teamStore) GetByName(ctx context.Context, name string) (*storage.Team, error) {
	var row teamRow
	err := s.db.WithContext(ctx).Where("name_key = ?", storage.NameKey(name)).First(&row).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("team %q", name))
	}
	return row.record(), nil
}

func (s *teamStore) Create(ctx context.Context, team *storage.Team) error {
	if _, err := s.GetByName(ctx, team.Name); err == nil {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	row := teamToRow(team)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, fmt.Sprintf("create team %q", team.Name))
	}
	team.ID = row.ID
	team.CreatedAt = row.CreatedAt
	return nil
}

func (s *teamStore) Update(ctx context.Context, team *storage.Team) error {
	if other, err := s.GetByName(ctx, team.Name); err == nil && other.ID != team.ID {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	return update(ctx, s.db, teamToRow(team), team.ID, fmt.Sprintf("team %d", team.ID), "id", "created_at")
}

func (s *teamStore) Delete(ctx context.Context, id int) error {
	return affected(s.db.WithContext(ctx).Delete(&teamRow{}, id), fmt.Sprintf("team %d", id))
}
