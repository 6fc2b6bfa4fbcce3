package sqlstore

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
	"time"
)

type activityStore struct{ db *gorm.DB }

func (s *activityStore) Create(ctx context.Context, activity *storage.Activity) error {
	row := &activityRow{
		TeamID:       activity.TeamID,
		Kind:         string(activity.Kind),
		Description:  activity.Description,
		PointsChange: activity.PointsChange,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "create activity")
	}
	activity.ID = row.ID
	activity.CreatedAt = row.CreatedAt
	return nil
}

func (s *activityStore) List(ctx context.Context, limit int) ([]*storage.Activity, error) {
	return s.newest(s.db.WithContext(ctx), limit)
}

func (s *activityStore) ListByTeam(ctx context.Context, teamID int, limit int) ([]*storage.Activity, error) {
	return s.newest(s.db.WithContext(ctx).Where("team_id = ?", teamID), limit)
}

func (s *activityStore) newest(q *gorm.DB, limit int) ([]*storage.Activity, error) {
	q = q.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []activityRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "list activity")
	}
	out := make([]*storage.Activity, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].record())
	}
	return out, nil
}

func (s *activityStore) ActiveTeamsSince(ctx context.Context, since time.Time) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&activityRow{}).
		Where("team_id IS NOT NULL AND created_at >= ?", since).
		Distinct("team_id").Count(&n).Error
	if err != nil {
		return 0, translate(err, "count active teams")
	}
	return int(n), nil
}

func (s *activityStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	var ids []int
	err := s.db.WithContext(ctx).Model(&activityRow{}).Order("id DESC").Offset(keep).Pluck("id", &ids).Error
	if err != nil {
		return 0, translate(err, "find stale activity")
	}
	if len(ids) == 0 {
		return 0, nil
	}
	tx := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&activityRow{})
	if tx.Error != nil {
		return 0, translate(tx.Error, "prune activity")
	}
	return int(tx.RowsAffected), nil
}
