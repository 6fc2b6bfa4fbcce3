package storage

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleLeader      Role = "leader"
	RoleParticipant Role = "participant"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLeader || r == RoleParticipant
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	return s == SubmissionPending || s == SubmissionApproved || s == SubmissionRejected
}

type ActivityKind string

const (
	ActivityScoreAdded         ActivityKind = "score_added"
	ActivityScoreUpdated       ActivityKind = "score_updated"
	ActivityScoreDeleted       ActivityKind = "score_deleted"
	ActivityTeamCreated        ActivityKind = "team_created"
	ActivityTeamDeleted        ActivityKind = "team_deleted"
	ActivityChallengeCreated   ActivityKind = "challenge_created"
	ActivityMemberJoined       ActivityKind = "member_joined"
	ActivitySubmission         ActivityKind = "submission"
	ActivitySubmissionApproved ActivityKind = "submission_approved"
	ActivitySubmissionRejected ActivityKind = "submission_rejected"
)

type Team struct {
	ID          int       `json:"id" dynamodbav:"PK"`
	Name        string    `json:"name" dynamodbav:"Name"`
	Color       string    `json:"color" dynamodbav:"Color"`
	Avatar      *string   `json:"avatar" dynamodbav:"Avatar"`
	MemberCount int       `json:"member_count" dynamodbav:"MemberCount"`
	LeaderID    *int      `json:"leader_id" dynamodbav:"LeaderID"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"CreatedAt"`
}

type User struct {
	ID           int       `json:"id" dynamodbav:"PK"`
	Username     string    `json:"username" dynamodbav:"Username"`
	Email        string    `json:"email" dynamodbav:"Email"`
	PasswordHash string    `json:"password_hash" dynamodbav:"PasswordHash"`
	Role         Role      `json:"role" dynamodbav:"Role"`
	TeamID       *int      `json:"team_id" dynamodbav:"TeamID"`
	Avatar       *string   `json:"avatar" dynamodbav:"Avatar"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"CreatedAt"`
}

type Challenge struct {
	ID          int        `json:"id" dynamodbav:"PK"`
	Name        string     `json:"name" dynamodbav:"Name"`
	Description string     `json:"description" dynamodbav:"Description"`
	MaxPoints   int        `json:"max_points" dynamodbav:"MaxPoints"`
	Difficulty  Difficulty `json:"difficulty" dynamodbav:"Difficulty"`
	Category    string     `json:"category" dynamodbav:"Category"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"CreatedAt"`
}

// Score is one point award. A nil ChallengeID means general points.
type Score struct {
	ID          int       `json:"id" dynamodbav:"PK"`
	TeamID      int       `json:"team_id" dynamodbav:"TeamID"`
	ChallengeID *int      `json:"challenge_id" dynamodbav:"ChallengeID"`
	Points      int       `json:"points" dynamodbav:"Points"`
	BonusPoints int       `json:"bonus_points" dynamodbav:"BonusPoints"`
	Comment     *string   `json:"comment" dynamodbav:"Comment"`
	AwardedAt   time.Time `json:"awarded_at" dynamodbav:"AwardedAt"`
}

func (s *Score) Total() int {
	return s.Points + s.BonusPoints
}

type Activity struct {
	ID           int          `json:"id" dynamodbav:"PK"`
	TeamID       *int         `json:"team_id" dynamodbav:"TeamID"`
	Kind         ActivityKind `json:"action_type" dynamodbav:"Kind"`
	Description  string       `json:"description" dynamodbav:"Description"`
	PointsChange int          `json:"points_change" dynamodbav:"PointsChange"`
	CreatedAt    time.Time    `json:"created_at" dynamodbav:"CreatedAt"`
}

type Submission struct {
	ID          int              `json:"id" dynamodbav:"PK"`
	UserID      int              `json:"user_id" dynamodbav:"UserID"`
	TeamID      int              `json:"team_id" dynamodbav:"TeamID"`
	ChallengeID int              `json:"challenge_id" dynamodbav:"ChallengeID"`
	Title       string           `json:"title" dynamodbav:"Title"`
	Description string           `json:"description" dynamodbav:"Description"`
	CodeURL     *string          `json:"code_url" dynamodbav:"CodeURL"`
	DemoURL     *string          `json:"demo_url" dynamodbav:"DemoURL"`
	Status      SubmissionStatus `json:"status" dynamodbav:"Status"`
	Feedback    *string          `json:"feedback" dynamodbav:"Feedback"`
	SubmittedAt time.Time        `json:"submitted_at" dynamodbav:"SubmittedAt"`
}

type SubmissionFilter struct {
	TeamID      *int
	ChallengeID *int
	UserID      *int
}

func (f SubmissionFilter) Match(s *Submission) bool {
	if f.TeamID != nil && s.TeamID != *f.TeamID {
		return false
	}
	if f.ChallengeID != nil && s.ChallengeID != *f.ChallengeID {
		return false
	}
	if f.UserID != nil && s.UserID != *f.UserID {
		return false
	}
	return true
}
