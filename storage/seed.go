package storage

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher func(password string) (string, error)

type seedUser struct {
	username, email, password string
	role                      Role
	team                      string
}

var seedTeams = []Team{
	{Name: "Max", Color: "#6366f1"},
	{Name: "Byte Me", Color: "#ec4899"},
	{Name: "Debug Dynasty", Color: "#10b981"},
	{Name: "Syntax Errors", Color: "#f59e0b"},
	{Name: "Infinite Loop", Color: "#ef4444"},
}

var seedUsers = []seedUser{
	{"admin", "admin@podium.local", "admin123", RoleAdmin, ""},
	{"max_leader", "max@podium.local", "leader123", RoleLeader, "Max"},
	{"ahmed", "ahmed@podium.local", "pass123", RoleParticipant, "Max"},
	{"sarah", "sarah@podium.local", "pass123", RoleParticipant, "Max"},
	{"youssef", "youssef@podium.local", "pass123", RoleParticipant, "Max"},
	{"david_leader", "david@podium.local", "leader123", RoleLeader, "Byte Me"},
}

var seedChallenges = []Challenge{
	{Name: "Premier Commit", Description: "Créer le dépôt et pousser le premier commit", MaxPoints: 100, Difficulty: DifficultyEasy, Category: "Git"},
	{Name: "API REST", Description: "Exposer une API REST complète", MaxPoints: 200, Difficulty: DifficultyMedium, Category: "Backend"},
	{Name: "Interface Responsive", Description: "Construire une interface adaptée au mobile", MaxPoints: 150, Difficulty: DifficultyMedium, Category: "Frontend"},
	{Name: "Accessibilité WCAG", Description: "Respecter les critères WCAG AA", MaxPoints: 250, Difficulty: DifficultyHard, Category: "Accessibilité"},
	{Name: "Temps Réel", Description: "Mettre à jour le classement en temps réel", MaxPoints: 300, Difficulty: DifficultyExpert, Category: "WebSocket"},
}

type seedScore struct {
	team, challenge int
	points, bonus   int
}

// indexes into seedTeams and seedChallenges
var seedScores = []seedScore{
	{0, 0, 100, 20},
	{0, 1, 180, 10},
	{1, 0, 90, 0},
	{2, 0, 100, 15},
}

// Seed inserts the demo dataset when the repository has no teams yet.
func Seed(ctx context.Context, repo *Repository, hash PasswordHasher) error {
	existing, err := repo.Teams.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list teams: %w", err)
	}
	if len(existing) > 0 {
		logging.Log.Debugf("STORAGE: %d teams present, skipping seed", len(existing))
		return nil
	}

	teamIDs := make(map[string]int, len(seedTeams))
	teams := make([]*Team, 0, len(seedTeams))
	for _, t := range seedTeams {
		team := t
		if err := repo.Teams.Create(ctx, &team); err != nil {
			return fmt.Errorf("seed: team %s: %w", t.Name, err)
		}
		teamIDs[team.Name] = team.ID
		teams = append(teams, &team)
	}

	members := make(map[int]int)
	for _, u := range seedUsers {
		hashed, err := hash(u.password)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", u.username, err)
		}
		user := &User{Username: u.username, Email: u.email, PasswordHash: hashed, Role: u.role}
		if u.team != "" {
			id := teamIDs[u.team]
			user.TeamID = &id
		}
		if err := repo.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed: user %s: %w", u.username, err)
		}
		if user.TeamID == nil {
			continue
		}
		members[*user.TeamID]++
		if user.Role == RoleLeader {
			for _, team := range teams {
				if team.ID == *user.TeamID {
					leader := user.ID
					team.LeaderID = &leader
				}
			}
		}
	}

	for _, team := range teams {
		team.MemberCount = members[team.ID]
		if err := repo.Teams.Update(ctx, team); err != nil {
			return fmt.Errorf("seed: update team %s: %w", team.Name, err)
		}
	}

	challengeIDs := make([]int, 0, len(seedChallenges))
	for _, c := range seedChallenges {
		challenge := c
		if err := repo.Challenges.Create(ctx, &challenge); err != nil {
			return fmt.Errorf("seed: challenge %s: %w", c.Name, err)
		}
		challengeIDs = append(challengeIDs, challenge.ID)
	}

	for _, s := range seedScores {
		challengeID := challengeIDs[s.challenge]
		score := &Score{
			TeamID:      teams[s.team].ID,
			ChallengeID: &challengeID,
			Points:      s.points,
			BonusPoints: s.bonus,
		}
		if err := repo.Scores.Create(ctx, score); err != nil {
			return fmt.Errorf("seed: score for %s: %w", teams[s.team].Name, err)
		}
	}

	logging.Log.Infof("STORAGE: seeded %d teams, %d users, %d challenges, %d scores",
		len(seedTeams), len(seedUsers), len(seedChallenges), len(seedScores))
	return nil
}
