package club

// ClubStore defines the interface for interacting with the player pool.
//
// SavePlayers is the only write primitive: it replaces the whole roster, so callers always
// submit the complete list. AddPlayer and RenamePlayer are load-modify-save helpers on top of it.
type ClubStore interface {
	LoadPlayers() ([]Player, error)
	SavePlayers(players []Player) error
	AddPlayer(name string) (Player, error)
	RenamePlayer(playerID, name string) (Player, error)
}
