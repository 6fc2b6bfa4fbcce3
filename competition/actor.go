package competition

import "github.com/Ahmedouyahya/Podium-de-concours/storage"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID     int
	Role   storage.Role
	TeamID *int
}

func ActorFrom(u *storage.User) Actor {
	return Actor{ID: u.ID, Role: u.Role, TeamID: u.TeamID}
}

func (a Actor) IsAdmin() bool {
	return a.Role == storage.RoleAdmin
}

func (a Actor) InTeam(teamID int) bool {
	return a.TeamID != nil && *a.TeamID == teamID
}
