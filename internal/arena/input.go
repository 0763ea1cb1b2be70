package arena

import (
	"github.com/google/uuid"
)

// InputKind is a player command applied on the session loop.
type InputKind uint8

const (
	InputMove InputKind = iota
	InputAim
	InputDash
	InputSkill
	InputAttack
)

func (k InputKind) String() string {
	switch k {
	case InputMove:
		return "move"
	case InputAim:
		return "aim"
	case InputDash:
		return "dash"
	case InputSkill:
		return "skill"
	case InputAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Input is one command for one character. X/Y carry the direction for
// move, aim and dash; Skill is the roster index for InputSkill.
type Input struct {
	Character uuid.UUID
	Kind      InputKind
	X, Y      float64
	Skill     int
}

// Move builds a move command.
func Move(id uuid.UUID, x, y float64) Input { return Input{Character: id, Kind: InputMove, X: x, Y: y} }

// Aim builds an aim command.
func Aim(id uuid.UUID, x, y float64) Input { return Input{Character: id, Kind: InputAim, X: x, Y: y} }

// Dash builds a dash command; a zero direction dashes along facing.
func Dash(id uuid.UUID, x, y float64) Input { return Input{Character: id, Kind: InputDash, X: x, Y: y} }

// Skill builds a skill activation command.
func Skill(id uuid.UUID, index int) Input {
	return Input{Character: id, Kind: InputSkill, Skill: index}
}

// Attack builds a primary-attack command.
func Attack(id uuid.UUID) Input { return Input{Character: id, Kind: InputAttack} }
