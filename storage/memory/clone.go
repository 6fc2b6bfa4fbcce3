package memory

import "github.com/Ahmedouyahya/Podium-de-concours/storage"

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTeam(t *storage.Team) *storage.Team {
	c := *t
	c.Avatar = cloneString(t.Avatar)
	c.LeaderID = cloneInt(t.LeaderID)
	return &c
}

func cloneUser(u *storage.User) *storage.User {
	c := *u
	c.TeamID = cloneInt(u.TeamID)
	c.Avatar = cloneString(u.Avatar)
	return &c
}

func cloneChallenge(ch *storage.Challenge) *storage.Challenge {
	c := *ch
	return &c
}

func cloneScore(s *storage.Score) *storage.Score {
	c := *s
	c.ChallengeID = cloneInt(s.ChallengeID)
	c.Comment = cloneString(s.Comment)
	return &c
}

func cloneActivity(a *storage.Activity) *storage.Activity {
	c := *a
	c.TeamID = cloneInt(a.TeamID)
	return &c
}

func cloneSubmission(s *storage.Submission) *storage.Submission {
	c := *s
	c.CodeURL = cloneString(s.CodeURL)
	c.DemoURL = cloneString(s.DemoURL)
	c.Feedback = cloneString(s.Feedback)
	return &c
}
