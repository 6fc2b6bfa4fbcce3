package competition

import (
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"sort"
	"time"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Row is one ranked team. It is derived on every read and never stored.
type Row struct {
	Team                storage.Team
	TotalScore          int
	ChallengesCompleted int
	// LastScoreAt is the timestamp of the team's most recent score, nil when it has none.
	LastScoreAt *time.Time
	Rank        int
	Trend       Trend
}

// Aggregate ranks teams by total score. Ties go to the team whose last score
// came first, then to the lower team id, so every rank from 1 to len(teams)
// is used exactly once. Scores of unknown teams are ignored. previous maps
// team id to an earlier rank and drives the trend; nil means every team is
// stable. Inputs are not modified.
func Aggregate(teams []*storage.Team, scores []*storage.Score, previous map[int]int) []Row {
	rows := make([]Row, 0, len(teams))
	index := make(map[int]int, len(teams))
	for _, t := range teams {
		if _, dup := index[t.ID]; dup {
			continue
		}
		index[t.ID] = len(rows)
		rows = append(rows, Row{Team: *t})
	}

	completed := make([]map[int]struct{}, len(rows))
	for _, s := range scores {
		i, ok := index[s.TeamID]
		if !ok {
			continue
		}
		row := &rows[i]
		row.TotalScore += s.Points + s.BonusPoints
		if s.ChallengeID != nil {
			if completed[i] == nil {
				completed[i] = map[int]struct{}{}
			}
			completed[i][*s.ChallengeID] = struct{}{}
		}
		if row.LastScoreAt == nil || s.AwardedAt.After(*row.LastScoreAt) {
			at := s.AwardedAt
			row.LastScoreAt = &at
		}
	}
	for i := range rows {
		rows[i].ChallengesCompleted = len(completed[i])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		switch {
		case a.LastScoreAt != nil && b.LastScoreAt == nil:
			return true
		case a.LastScoreAt == nil && b.LastScoreAt != nil:
			return false
		case a.LastScoreAt != nil && !a.LastScoreAt.Equal(*b.LastScoreAt):
			return a.LastScoreAt.Before(*b.LastScoreAt)
		}
		return a.Team.ID < b.Team.ID
	})

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Trend = trend(previous, rows[i].Team.ID, rows[i].Rank)
	}
	return rows
}

func trend(previous map[int]int, teamID, rank int) Trend {
	before, ok := previous[teamID]
	switch {
	case !ok:
		return TrendStable
	case rank < before:
		return TrendUp
	case rank > before:
		return TrendDown
	}
	return TrendStable
}

// Ranks maps team id to rank.
func Ranks(rows []Row) map[int]int {
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		out[r.Team.ID] = r.Rank
	}
	return out
}
