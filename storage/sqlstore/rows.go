package sqlstore

import (
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type teamRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:100;not null"`
	NameKey     string `gorm:"size:100;not null;uniqueIndex"`
	Color       string `gorm:"size:20;not null;default:'#6366f1'"`
	Avatar      *string
	MemberCount int  `gorm:"not null;default:0"`
	LeaderID    *int `gorm:"index"`
	CreatedAt   time.Time
}

func (teamRow) TableName() string { return "teams" }

type userRow struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:191;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:participant"`
	TeamID       *int   `gorm:"index"`
	Avatar       *string
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type challengeRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	MaxPoints   int    `gorm:"not null;default:100"`
	Difficulty  string `gorm:"size:20;not null;default:medium"`
	Category    string `gorm:"size:100"`
	CreatedAt   time.Time
}

func (challengeRow) TableName() string { return "challenges" }

type scoreRow struct {
	ID          int  `gorm:"primaryKey;autoIncrement"`
	TeamID      int  `gorm:"not null;index"`
	ChallengeID *int `gorm:"index"`
	Points      int  `gorm:"not null;default:0"`
	BonusPoints int  `gorm:"not null;default:0"`
	Comment     *string
	AwardedAt   time.Time `gorm:"not null;index"`
}

func (scoreRow) TableName() string { return "scores" }

type activityRow struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	TeamID       *int   `gorm:"index"`
	Kind         string `gorm:"column:action_type;size:40;not null"`
	Description  string `gorm:"type:text"`
	PointsChange int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (activityRow) TableName() string { return "activity_log" }

type submissionRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	UserID      int    `gorm:"not null;index"`
	TeamID      int    `gorm:"not null;index"`
	ChallengeID int    `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	CodeURL     *string
	DemoURL     *string
	Status      string `gorm:"size:20;not null;default:pending"`
	Feedback    *string
	SubmittedAt time.Time `gorm:"not null"`
}

func (submissionRow) TableName() string { return "submissions" }

type rankRow struct {
	TeamID int `gorm:"primaryKey;autoIncrement:false"`
	Rank   int `gorm:"not null"`
}

func (rankRow) TableName() string { return "rank_baseline" }

func teamToRow(t *storage.Team) *teamRow {
	return &teamRow{
		ID:          t.ID,
		Name:        t.Name,
		NameKey:     storage.NameKey(t.Name),
		Color:       t.Color,
		Avatar:      t.Avatar,
		MemberCount: t.MemberCount,
		LeaderID:    t.LeaderID,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *teamRow) record() *storage.Team {
	return &storage.Team{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Avatar:      r.Avatar,
		MemberCount: r.MemberCount,
		LeaderID:    r.LeaderID,
		CreatedAt:   r.CreatedAt,
	}
}

func userToRow(u *storage.User) *userRow {
	return &userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		TeamID:       u.TeamID,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *userRow) record() *storage.User {
	return &storage.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         storage.Role(r.Role),
		TeamID:       r.TeamID,
		Avatar:       r.Avatar,
		CreatedAt:    r.CreatedAt,
	}
}

func challengeToRow(c *storage.Challenge) *challengeRow {
	return &challengeRow{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		MaxPoints:   c.MaxPoints,
		Difficulty:  string(c.Difficulty),
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *challengeRow) record() *storage.Challenge {
	return &storage.Challenge{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		MaxPoints:   r.MaxPoints,
		Difficulty:  storage.Difficulty(r.Difficulty),
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

func scoreToRow(s *storage.Score) *scoreRow {
	return &scoreRow{
		ID:          s.ID,
		TeamID:      s.TeamID,
		ChallengeID: s.ChallengeID,
		Points:      s.Points,
		BonusPoints: s.BonusPoints,
		Comment:     s.Comment,
		AwardedAt:   s.AwardedAt,
	}
}

func (r *scoreRow) record() *storage.Score {
	return &storage.Score{
		ID:          r.ID,
		TeamID:      r.TeamID,
		ChallengeID: r.ChallengeID,
		Points:      r.Points,
		BonusPoints: r.BonusPoints,
		Comment:     r.Comment,
		AwardedAt:   r.AwardedAt,
	}
}

func (r *activityRow) record() *storage.Activity {
	return &storage.Activity{
		ID:           r.ID,
		TeamID:       r.TeamID,
		Kind:         storage.ActivityKind(r.Kind),
		Description:  r.Description,
		PointsChange: r.PointsChange,
		CreatedAt:    r.CreatedAt,
	}
}

func submissionToRow(s *storage.Submission) *submissionRow {
	return &submissionRow{
		ID:          s.ID,
		UserID:      s.UserID,
		TeamID:      s.TeamID,
		ChallengeID: s.ChallengeID,
		Title:       s.Title,
		Description: s.Description,
		CodeURL:     s.CodeURL,
		DemoURL:     s.DemoURL,
		Status:      string(s.Status),
		Feedback:    s.Feedback,
		SubmittedAt: s.SubmittedAt,
	}
}

func (r *submissionRow) record() *storage.Submission {
	return &storage.Submission{
		ID:          r.ID,
		UserID:      r.UserID,
		TeamID:      r.TeamID,
		ChallengeID: r.ChallengeID,
		Title:       r.Title,
		Description: r.Description,
		CodeURL:     r.CodeURL,
		DemoURL:     r.DemoURL,
		Status:      storage.SubmissionStatus(r.Status),
		Feedback:    r.Feedback,
		SubmittedAt: r.SubmittedAt,
	}
}
