package sqlstore

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
	"time"
)

type scoreStore struct{ db *gorm.DB }

func (s *scoreStore) Get(ctx context.Context, id int) (*storage.Score, error) {
	var row scoreRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("score %d", id))
	}
	return row.record(), nil
}

func (s *scoreStore) GetAll(ctx context.Context) ([]*storage.Score, error) {
	return s.find(s.db.WithContext(ctx).Order("id"), "list scores")
}

func (s *scoreStore) ListByTeam(ctx context.Context, teamID int) ([]*storage.Score, error) {
	return s.find(s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id"), "list team scores")
}

func (s *scoreStore) find(q *gorm.DB, what string) ([]*storage.Score, error) {
	var rows []scoreRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, what)
	}
	out := make([]*storage.Score, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].record())
	}
	return out, nil
}

func (s *scoreStore) Create(ctx context.Context, score *storage.Score) error {
	if score.AwardedAt.IsZero() {
		score.AwardedAt = time.Now().UTC()
	}
	row := scoreToRow(score)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, fmt.Sprintf("create score for team %d", score.TeamID))
	}
	score.ID = row.ID
	return nil
}

func (s *scoreStore) Update(ctx context.Context, score *storage.Score) error {
	return update(ctx, s.db, scoreToRow(score), score.ID, fmt.Sprintf("score %d", score.ID), "id")
}

func (s *scoreStore) Delete(ctx context.Context, id int) error {
	return affected(s.db.WithContext(ctx).Delete(&scoreRow{}, id), fmt.Sprintf("score %d", id))
}

func (s *scoreStore) DeleteByTeam(ctx context.Context, teamID int) error {
	err := s.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&scoreRow{}).Error
	return translate(err, fmt.Sprintf("delete scores of team %d", teamID))
}
