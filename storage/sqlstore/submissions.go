package sqlstore

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
	"time"
)

type submissionStore struct{ db *gorm.DB }

func (s *submissionStore) Get(ctx context.Context, id int) (*storage.Submission, error) {
	var row submissionRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("submission %d", id))
	}
	return row.record(), nil
}

func (s *submissionStore) List(ctx context.Context, filter storage.SubmissionFilter) ([]*storage.Submission, error) {
	q := s.db.WithContext(ctx).Order("id DESC")
	if filter.TeamID != nil {
		q = q.Where("team_id = ?", *filter.TeamID)
	}
	if filter.ChallengeID != nil {
		q = q.Where("challenge_id = ?", *filter.ChallengeID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var rows []submissionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "list submissions")
	}
	out := make([]*storage.Submission, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].record())
	}
	return out, nil
}

func (s *submissionStore) Create(ctx context.Context, sub *storage.Submission) error {
	sub.SubmittedAt = time.Now().UTC()
	if sub.Status == "" {
		sub.Status = storage.SubmissionPending
	}
	row := submissionToRow(sub)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, "create submission")
	}
	sub.ID = row.ID
	return nil
}

func (s *submissionStore) Update(ctx context.Context, sub *storage.Submission) error {
	what := fmt.Sprintf("submission %d", sub.ID)
	return update(ctx, s.db, submissionToRow(sub), sub.ID, what, "id", "submitted_at")
}

func (s *submissionStore) Delete(ctx context.Context, id int) error {
	return affected(s.db.WithContext(ctx).Delete(&submissionRow{}, id), fmt.Sprintf("submission %d", id))
}

func (s *submissionStore) DeleteByTeam(ctx context.Context, teamID int) error {
	err := s.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&submissionRow{}).Error
	return translate(err, fmt.Sprintf("delete submissions of team %d", teamID))
}
