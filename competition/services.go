package competition

import (
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"sync"
)

// Services wires every domain service over one repository. Services that
// write teams, users, scores or submissions share one lock, so a check made
// against one collection still holds when another is written.
type Services struct {
	Leaderboard *Leaderboard
	Recorder    *Recorder
	Ledger      *Ledger
	Roster      *Roster
	Accounts    *Accounts
	Challenges  *Challenges
	Submissions *Submissions
}

func NewServices(repo *storage.Repository, notifier Notifier) *Services {
	writes := new(sync.Mutex)
	board := NewLeaderboard(repo)
	recorder := NewRecorder(repo)
	roster := NewRoster(repo, board, recorder, notifier, writes)
	return &Services{
		Leaderboard: board,
		Recorder:    recorder,
		Ledger:      NewLedger(repo, board, recorder, notifier, writes),
		Roster:      roster,
		Accounts:    NewAccounts(repo, roster),
		Challenges:  NewChallenges(repo, recorder, notifier),
		Submissions: NewSubmissions(repo, recorder, notifier, writes),
	}
}
