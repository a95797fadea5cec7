package jornada

// Store persists the match history and the current session.
//
// Both collections are written by whole replacement only: SaveMatchesHistory deletes every stored
// match before inserting the given list, and there is at most one session at any time.
//
// The Has methods look at stored rows, decodable or not, while the Load methods skip what they
// cannot decode.
type Store interface {
	LoadMatchesHistory() ([]MatchSlot, error)
	SaveMatchesHistory(matches []MatchSlot) error
	HasMatchesHistory() (bool, error)
	LoadCurrentSession() (*Session, error)
	SaveCurrentSession(session *Session) error
	HasCurrentSession() (bool, error)
	ClearCurrentSession() error
}
