package competition

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
	"sync"
)

type SubmissionInput struct {
	TeamID      *int
	ChallengeID int
	Title       string
	Description string
	CodeURL     *string
	DemoURL     *string
}

// SubmissionChange edits a submission. Status and Feedback are admin only.
type SubmissionChange struct {
	Title       *string
	Description *string
	CodeURL     *string
	DemoURL     *string
	Status      *storage.SubmissionStatus
	Feedback    *string
}

type SubmissionEntry struct {
	Submission *storage.Submission
	User       *storage.User
	Team       *storage.Team
	Challenge  *storage.Challenge
}

// Submissions handles claimed solutions and their review. Approval does not
// award points; admins do that through the ledger.
type Submissions struct {
	mu         *sync.Mutex
	subs       storage.SubmissionStorage
	users      storage.UserStorage
	teams      storage.TeamStorage
	challenges storage.ChallengeStorage
	recorder   *Recorder
	notifier   Notifier
}

func NewSubmissions(repo *storage.Repository, recorder *Recorder, notifier Notifier, writes *sync.Mutex) *Submissions {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if writes == nil {
		writes = new(sync.Mutex)
	}
	return &Submissions{
		mu:         writes,
		subs:       repo.Submissions,
		users:      repo.Users,
		teams:      repo.Teams,
		challenges: repo.Challenges,
		recorder:   recorder,
		notifier:   notifier,
	}
}

func (s *Submissions) List(ctx context.Context, filter storage.SubmissionFilter) ([]SubmissionEntry, error) {
	subs, err := s.subs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SubmissionEntry, 0, len(subs))
	for _, sub := range subs {
		out = append(out, s.entry(ctx, sub))
	}
	return out, nil
}

func (s *Submissions) Get(ctx context.Context, id int) (*SubmissionEntry, error) {
	sub, err := s.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := s.entry(ctx, sub)
	return &entry, nil
}

func (s *Submissions) entry(ctx context.Context, sub *storage.Submission) SubmissionEntry {
	entry := SubmissionEntry{Submission: sub}
	if u, err := s.users.Get(ctx, sub.UserID); err == nil {
		entry.User = u
	}
	if t, err := s.teams.Get(ctx, sub.TeamID); err == nil {
		entry.Team = t
	}
	if c, err := s.challenges.Get(ctx, sub.ChallengeID); err == nil {
		entry.Challenge = c
	}
	return entry
}

func (s *Submissions) Create(ctx context.Context, actor Actor, in SubmissionInput) (*storage.Submission, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.ChallengeID == 0 {
		return nil, invalid("challenge_id and title are required")
	}
	teamID := in.TeamID
	if teamID == nil {
		teamID = actor.TeamID
	}
	if teamID == nil {
		return nil, invalid("a team is required to submit")
	}
	if !actor.IsAdmin() && !actor.InTeam(*teamID) {
		return nil, forbidden("cannot submit for team %d", *teamID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team, err := s.teams.Get(ctx, *teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.challenges.Get(ctx, in.ChallengeID); err != nil {
		return nil, err
	}

	sub := &storage.Submission{
		UserID:      actor.ID,
		TeamID:      team.ID,
		ChallengeID: in.ChallengeID,
		Title:       title,
		Description: in.Description,
		CodeURL:     in.CodeURL,
		DemoURL:     in.DemoURL,
		Status:      storage.SubmissionPending,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, storage.ActivitySubmission, &team.ID, 0, "%s a soumis %q", team.Name, sub.Title)
	s.notifier.Notify(EventSubmissionAdded)
	return sub, nil
}

func (s *Submissions) Update(ctx context.Context, actor Actor, id int, change SubmissionChange) (*storage.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if actor.ID != sub.UserID {
			return nil, forbidden("only the author or an admin can edit submission %d", id)
		}
		if change.Status != nil || change.Feedback != nil {
			return nil, forbidden("only an admin can review submissions")
		}
	}

	if change.Title != nil {
		if strings.TrimSpace(*change.Title) == "" {
			return nil, invalid("title cannot be empty")
		}
		sub.Title = strings.TrimSpace(*change.Title)
	}
	if change.Description != nil {
		sub.Description = *change.Description
	}
	if change.CodeURL != nil {
		sub.CodeURL = change.CodeURL
	}
	if change.DemoURL != nil {
		sub.DemoURL = change.DemoURL
	}
	if change.Feedback != nil {
		sub.Feedback = change.Feedback
	}
	previous := sub.Status
	if change.Status != nil {
		if !change.Status.Valid() {
			return nil, invalid("status must be one of pending, approved, rejected")
		}
		sub.Status = *change.Status
	}

	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}

	event := EventLeaderboardUpdated
	if sub.Status != previous {
		s.recordReview(ctx, sub)
		if sub.Status == storage.SubmissionApproved {
			event = EventSubmissionApproved
		}
	}
	s.notifier.Notify(event)
	return sub, nil
}

func (s *Submissions) recordReview(ctx context.Context, sub *storage.Submission) {
	name := fmt.Sprintf("l'équipe #%d", sub.TeamID)
	if team, err := s.teams.Get(ctx, sub.TeamID); err == nil {
		name = team.Name
	}
	switch sub.Status {
	case storage.SubmissionApproved:
		logging.Log.Infof("SUBMISSION: %d approved", sub.ID)
		s.recorder.Record(ctx, storage.ActivitySubmissionApproved, &sub.TeamID, 0, "Soumission %q de %s approuvée", sub.Title, name)
	case storage.SubmissionRejected:
		logging.Log.Infof("SUBMISSION: %d rejected", sub.ID)
		s.recorder.Record(ctx, storage.ActivitySubmissionRejected, &sub.TeamID, 0, "Soumission %q de %s rejetée", sub.Title, name)
	}
}

func (s *Submissions) Delete(ctx context.Context, actor Actor, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.subs.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.ID != sub.UserID {
		return forbidden("only the author or an admin can delete submission %d", id)
	}
	if err := s.subs.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(EventLeaderboardUpdated)
	return nil
}
