package sqlstore

import (
	"context"
	"gorm.io/gorm"
)

type rankStore struct{ db *gorm.DB }

// SaveRanks replaces the whole baseline in one transaction.
func (s *rankStore) SaveRanks(ctx context.Context, ranks map[int]int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&rankRow{}).Error; err != nil {
			return err
		}
		if len(ranks) == 0 {
			return nil
		}
		rows := make([]rankRow, 0, len(ranks))
		for teamID, rank := range ranks {
			rows = append(rows, rankRow{TeamID: teamID, Rank: rank})
		}
		return tx.Create(&rows).Error
	})
}

func (s *rankStore) LoadRanks(ctx context.Context) (map[int]int, error) {
	var rows []rankRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err, "load rank baseline")
	}
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		out[r.TeamID] = r.Rank
	}
	return out, nil
}
