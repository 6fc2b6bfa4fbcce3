package competition

const (
	EventLeaderboardUpdated = "leaderboard_updated"
	EventSubmissionAdded    = "submission_added"
	EventSubmissionApproved = "submission_approved"
)

// Notifier fans a change hint out to subscribers. Delivery is best effort.
type Notifier interface {
	Notify(event string)
}

type NotifierFunc func(event string)

func (f NotifierFunc) Notify(event string) { f(event) }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
