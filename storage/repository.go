package storage

type Mode string

const (
	ModeDatabase Mode = "database"
	ModeDynamo   Mode = "dynamo"
	ModeFile     Mode = "json"
	ModeMemory   Mode = "memory"
)

// Repository bundles the storage ports of one backend.
type Repository struct {
	Mode        Mode
	Teams       TeamStorage
	Users       UserStorage
	Challenges  ChallengeStorage
	Scores      ScoreStorage
	Activities  ActivityStorage
	Submissions SubmissionStorage
	Ranks       RankStorage

	closers []func() error
}

func (r *Repository) OnClose(fn func() error) {
	r.closers = append(r.closers, fn)
}

func (r *Repository) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}
