package dynamo

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
	"time"
)

type teamStore struct {
	t   *table[storage.Team]
	ids *counters
}

func (s *teamStore) Get(ctx context.Context, id int) (*storage.Team, error) {
	return s.t.get(ctx, id)
}

func (s *teamStore) GetAll(ctx context.Context) ([]*storage.Team, error) {
	return s.t.scan(ctx)
}

func (s *teamStore) GetByName(ctx context.Context, name string) (*storage.Team, error) {
	key := storage.NameKey(name)
	found, err := s.t.filter(ctx, func(t *storage.Team) bool { return storage.NameKey(t.Name) == key })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: team %q", storage.ErrNotFound, name)
	}
	return found[0], nil
}

func (s *teamStore) Create(ctx context.Context, team *storage.Team) error {
	if _, err := s.GetByName(ctx, team.Name); err == nil {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	id, err := s.ids.next(ctx, "teams")
	if err != nil {
		return err
	}
	team.ID = id
	team.CreatedAt = time.Now().UTC()
	return s.t.put(ctx, team, false)
}

func (s *teamStore) Update(ctx context.Context, team *storage.Team) error {
	if other, err := s.GetByName(ctx, team.Name); err == nil && other.ID != team.ID {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	return s.t.put(ctx, team, true)
}

func (s *teamStore) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, id)
}

type userStore struct {
	t   *table[storage.User]
	ids *counters
}

func (s *userStore) Get(ctx context.Context, id int) (*storage.User, error) {
	return s.t.get(ctx, id)
}

func (s *userStore) GetAll(ctx context.Context) ([]*storage.User, error) {
	return s.t.scan(ctx)
}

func (s *userStore) GetByLogin(ctx context.Context, login string) (*storage.User, error) {
	found, err := s.t.filter(ctx, func(u *storage.User) bool {
		return u.Username == login || strings.EqualFold(u.Email, login)
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: user %q", storage.ErrNotFound, login)
	}
	return found[0], nil
}

func (s *userStore) ListByTeam(ctx context.Context, teamID int) ([]*storage.User, error) {
	return s.t.filter(ctx, func(u *storage.User) bool { return u.TeamID != nil && *u.TeamID == teamID })
}

func (s *userStore) conflict(ctx context.Context, user *storage.User) error {
	found, err := s.t.filter(ctx, func(u *storage.User) bool {
		return u.ID != user.ID && (u.Username == user.Username || strings.EqualFold(u.Email, user.Email))
	})
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return fmt.Errorf("%w: username %q or email %q", storage.ErrAlreadyExists, user.Username, user.Email)
	}
	return nil
}

func (s *userStore) Create(ctx context.Context, user *storage.User) error {
	user.ID = 0
	if err := s.conflict(ctx, user); err != nil {
		return err
	}
	id, err := s.ids.next(ctx, "users")
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now().UTC()
	return s.t.put(ctx, user, false)
}

func (s *userStore) Update(ctx context.Context, user *storage.User) error {
	if err := s.conflict(ctx, user); err != nil {
		return err
	}
	return s.t.put(ctx, user, true)
}

func (s *userStore) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, id)
}

type challengeStore struct {
	t   *table[storage.Challenge]
	ids *counters
}

func (s *challengeStore) Get(ctx context.Context, id int) (*storage.Challenge, error) {
	return s.t.get(ctx, id)
}

func (s *challengeStore) GetAll(ctx context.Context) ([]*storage.Challenge, error) {
	return s.t.scan(ctx)
}

func (s *challengeStore) Create(ctx context.Context, challenge *storage.Challenge) error {
	id, err := s.ids.next(ctx, "challenges")
	if err != nil {
		return err
	}
	challenge.ID = id
	challenge.CreatedAt = time.Now().UTC()
	return s.t.put(ctx, challenge, false)
}

func (s *challengeStore) Update(ctx context.Context, challenge *storage.Challenge) error {
	return s.t.put(ctx, challenge, true)
}

func (s *challengeStore) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, id)
}

type scoreStore struct {
	t   *table[storage.Score]
	ids *counters
}

func (s *scoreStore) Get(ctx context.Context, id int) (*storage.Score, error) {
	return s.t.get(ctx, id)
}

func (s *scoreStore) GetAll(ctx context.Context) ([]*storage.Score, error) {
	return s.t.scan(ctx)
}

func (s *scoreStore) ListByTeam(ctx context.Context, teamID int) ([]*storage.Score, error) {
	return s.t.filter(ctx, func(sc *storage.Score) bool { return sc.TeamID == teamID })
}

func (s *scoreStore) Create(ctx context.Context, score *storage.Score) error {
	id, err := s.ids.next(ctx, "scores")
	if err != nil {
		return err
	}
	score.ID = id
	if score.AwardedAt.IsZero() {
		score.AwardedAt = time.Now().UTC()
	}
	return s.t.put(ctx, score, false)
}

func (s *scoreStore) Update(ctx context.Context, score *storage.Score) error {
	return s.t.put(ctx, score, true)
}

func (s *scoreStore) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, id)
}

func (s *scoreStore) DeleteByTeam(ctx context.Context, teamID int) error {
	return s.t.deleteWhere(ctx, func(sc *storage.Score) bool { return sc.TeamID == teamID })
}

type activityStore struct {
	t   *table[storage.Activity]
	ids *counters
}

func (s *activityStore) Create(ctx context.Context, activity *storage.Activity) error {
	id, err := s.ids.next(ctx, "activity")
	if err != nil {
		return err
	}
	activity.ID = id
	activity.CreatedAt = time.Now().UTC()
	return s.t.put(ctx, activity, false)
}

func (s *activityStore) List(ctx context.Context, limit int) ([]*storage.Activity, error) {
	all, err := s.t.scan(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(all, limit), nil
}

func (s *activityStore) ListByTeam(ctx context.Context, teamID int, limit int) ([]*storage.Activity, error) {
	found, err := s.t.filter(ctx, func(a *storage.Activity) bool {
		return a.TeamID != nil && *a.TeamID == teamID
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(found, limit), nil
}

func (s *activityStore) ActiveTeamsSince(ctx context.Context, since time.Time) (int, error) {
	found, err := s.t.filter(ctx, func(a *storage.Activity) bool {
		return a.TeamID != nil && !a.CreatedAt.Before(since)
	})
	if err != nil {
		return 0, err
	}
	teams := map[int]struct{}{}
	for _, a := range found {
		teams[*a.TeamID] = struct{}{}
	}
	return len(teams), nil
}

// newestFirst reverses id-sorted entries and applies limit when positive.
func newestFirst(all []*storage.Activity, limit int) []*storage.Activity {
	var out []*storage.Activity
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out
}

func (s *activityStore) Prune(ctx context.Context, keep int) (int, error) {
	all, err := s.t.scan(ctx)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(all) <= keep {
		return 0, nil
	}
	stale := all[:len(all)-keep]
	for _, a := range stale {
		if err := s.t.delete(ctx, a.ID); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

type submissionStore struct {
	t   *table[storage.Submission]
	ids *counters
}

func (s *submissionStore) Get(ctx context.Context, id int) (*storage.Submission, error) {
	return s.t.get(ctx, id)
}

func (s *submissionStore) List(ctx context.Context, filter storage.SubmissionFilter) ([]*storage.Submission, error) {
	found, err := s.t.filter(ctx, filter.Match)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found, nil
}

func (s *submissionStore) Create(ctx context.Context, sub *storage.Submission) error {
	id, err := s.ids.next(ctx, "submissions")
	if err != nil {
		return err
	}
	sub.ID = id
	sub.SubmittedAt = time.Now().UTC()
	if sub.Status == "" {
		sub.Status = storage.SubmissionPending
	}
	return s.t.put(ctx, sub, false)
}

func (s *submissionStore) Update(ctx context.Context, sub *storage.Submission) error {
	return s.t.put(ctx, sub, true)
}

func (s *submissionStore) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, id)
}

func (s *submissionStore) DeleteByTeam(ctx context.Context, teamID int) error {
	return s.t.deleteWhere(ctx, func(sb *storage.Submission) bool { return sb.TeamID == teamID })
}
