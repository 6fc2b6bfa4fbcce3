package sqlstore

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/gorm"
)

type challengeStore struct{ db *gorm.DB }

func (s *challengeStore) Get(ctx context.Context, id int) (*storage.Challenge, error) {
	var row challengeRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("challenge %d", id))
	}
	return row.record(), nil
}

func (s *challengeStore) GetAll(ctx context.Context) ([]*storage.Challenge, error) {
	var rows []challengeRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "list challenges")
	}
	out := make([]*storage.Challenge, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].record())
	}
	return out, nil
}

func (s *challengeStore) Create(ctx context.Context, challenge *storage.Challenge) error {
	row := challengeToRow(challenge)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err, fmt.Sprintf("create challenge %q", challenge.Name))
	}
	challenge.ID = row.ID
	challenge.CreatedAt = row.CreatedAt
	return nil
}

func (s *challengeStore) Update(ctx context.Context, challenge *storage.Challenge) error {
	what := fmt.Sprintf("challenge %d", challenge.ID)
	return update(ctx, s.db, challengeToRow(challenge), challenge.ID, what, "id", "created_at")
}

func (s *challengeStore) Delete(ctx context.Context, id int) error {
	return affected(s.db.WithContext(ctx).Delete(&challengeRow{}, id), fmt.Sprintf("challenge %d", id))
}
