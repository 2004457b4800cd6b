package nimlines

import "strconv"

// Player identifies one of the two participants.
type Player uint8

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	return "Player " + strconv.Itoa(int(p))
}

// Winner is either undecided (the zero value) or holds the player who won.
// Only the engine can produce a decided Winner.
type Winner struct {
	player Player
}

func decided(p Player) Winner {
	return Winner{player: p}
}

// Player returns the winning player and true once the game is finished.
func (w Winner) Player() (Player, bool) {
	return w.player, w.player != 0
}

func (w Winner) Decided() bool {
	return w.player != 0
}

func (w Winner) String() string {
	if !w.Decided() {
		return "not decided"
	}
	return w.player.String()
}

// State is the engine lifecycle stage.
type State uint8

const (
	StateNotStarted State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "not started"
	}
}
