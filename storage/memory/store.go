// Package memory keeps the whole dataset in process. One RWMutex guards every
// collection so each storage call is atomic with respect to the others.
package memory

import (
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"sort"
	"sync"
	"time"
)

// Dataset is a point-in-time copy of every collection plus the id counters.
type Dataset struct {
	Teams       []*storage.Team       `json:"teams"`
	Users       []*storage.User       `json:"users"`
	Challenges  []*storage.Challenge  `json:"challenges"`
	Scores      []*storage.Score      `json:"scores"`
	Activities  []*storage.Activity   `json:"activity"`
	Submissions []*storage.Submission `json:"submissions"`
	Counters    map[string]int        `json:"counters"`
}

const (
	counterTeams       = "teams"
	counterUsers       = "users"
	counterChallenges  = "challenges"
	counterScores      = "scores"
	counterActivities  = "activity"
	counterSubmissions = "submissions"
)

// Store is the in-memory backend. OnMutation, when set, receives a snapshot
// after every write while the write lock is still held. When it fails the
// store rolls back to the last dataset it accepted.
type Store struct {
	mu sync.RWMutex

	teams       map[int]*storage.Team
	users       map[int]*storage.User
	challenges  map[int]*storage.Challenge
	scores      map[int]*storage.Score
	activities  map[int]*storage.Activity
	submissions map[int]*storage.Submission
	counters    map[string]int

	OnMutation func(Dataset) error
	now        func() time.Time

	committed Dataset
}

func NewStore() *Store {
	return &Store{
		teams:       map[int]*storage.Team{},
		users:       map[int]*storage.User{},
		challenges:  map[int]*storage.Challenge{},
		scores:      map[int]*storage.Score{},
		activities:  map[int]*storage.Activity{},
		submissions: map[int]*storage.Submission{},
		counters:    map[string]int{},
		now:         time.Now,
	}
}

// Repository exposes the store through the storage ports.
func (s *Store) Repository() *storage.Repository {
	return &storage.Repository{
		Mode:        storage.ModeMemory,
		Teams:       &teamStore{s},
		Users:       &userStore{s},
		Challenges:  &challengeStore{s},
		Scores:      &scoreStore{s},
		Activities:  &activityStore{s},
		Submissions: &submissionStore{s},
		Ranks:       NewRankStore(),
	}
}

// Load replaces the current content with a dataset. Counters are raised to
// at least the highest id found so ids are never reused.
func (s *Store) Load(d Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(d)
	s.committed = s.snapshotLocked()
}

func (s *Store) loadLocked(d Dataset) {
	s.teams = map[int]*storage.Team{}
	for _, t := range d.Teams {
		s.teams[t.ID] = cloneTeam(t)
	}
	s.users = map[int]*storage.User{}
	for _, u := range d.Users {
		s.users[u.ID] = cloneUser(u)
	}
	s.challenges = map[int]*storage.Challenge{}
	for _, c := range d.Challenges {
		s.challenges[c.ID] = cloneChallenge(c)
	}
	s.scores = map[int]*storage.Score{}
	for _, sc := range d.Scores {
		s.scores[sc.ID] = cloneScore(sc)
	}
	s.activities = map[int]*storage.Activity{}
	for _, a := range d.Activities {
		s.activities[a.ID] = cloneActivity(a)
	}
	s.submissions = map[int]*storage.Submission{}
	for _, sub := range d.Submissions {
		s.submissions[sub.ID] = cloneSubmission(sub)
	}

	s.counters = map[string]int{}
	for k, v := range d.Counters {
		s.counters[k] = v
	}
	raise := func(name string, id int) {
		if id > s.counters[name] {
			s.counters[name] = id
		}
	}
	for id := range s.teams {
		raise(counterTeams, id)
	}
	for id := range s.users {
		raise(counterUsers, id)
	}
	for id := range s.challenges {
		raise(counterChallenges, id)
	}
	for id := range s.scores {
		raise(counterScores, id)
	}
	for id := range s.activities {
		raise(counterActivities, id)
	}
	for id := range s.submissions {
		raise(counterSubmissions, id)
	}
}

// Snapshot copies the current dataset.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Dataset {
	d := Dataset{Counters: make(map[string]int, len(s.counters))}
	for k, v := range s.counters {
		d.Counters[k] = v
	}
	for _, id := range sortedKeys(s.teams) {
		d.Teams = append(d.Teams, cloneTeam(s.teams[id]))
	}
	for _, id := range sortedKeys(s.users) {
		d.Users = append(d.Users, cloneUser(s.users[id]))
	}
	for _, id := range sortedKeys(s.challenges) {
		d.Challenges = append(d.Challenges, cloneChallenge(s.challenges[id]))
	}
	for _, id := range sortedKeys(s.scores) {
		d.Scores = append(d.Scores, cloneScore(s.scores[id]))
	}
	for _, id := range sortedKeys(s.activities) {
		d.Activities = append(d.Activities, cloneActivity(s.activities[id]))
	}
	for _, id := range sortedKeys(s.submissions) {
		d.Submissions = append(d.Submissions, cloneSubmission(s.submissions[id]))
	}
	return d
}

func (s *Store) nextID(name string) int {
	s.counters[name]++
	return s.counters[name]
}

// commit runs the mutation hook. Callers hold the write lock.
func (s *Store) commit() error {
	if s.OnMutation == nil {
		return nil
	}
	d := s.snapshotLocked()
	if err := s.OnMutation(d); err != nil {
		s.loadLocked(s.committed)
		return err
	}
	s.committed = d
	return nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
