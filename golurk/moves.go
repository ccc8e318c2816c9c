package golurk

import (
	"fmt"
	"strings"
)

// Move is a single attack a Pokemon can use. A move with an Ailment other than STATUS_NONE
// applies that status to the target after it hits, there is no separate type for status moves.
//
// Moves are passed around by value and never changed after NewMove, so sharing them is fine.
type Move struct {
	Name    string `json:"name"`
	Power   uint   `json:"power"`
	Type    string `json:"type"`
	Special bool   `json:"special"`
	Ailment int    `json:"-"`
}

// NewMove validates the fields of a move and returns it
func NewMove(name string, power uint, moveType string, special bool, ailment int) (Move, error) {
	if strings.TrimSpace(name) == "" {
		return Move{}, validationError(ErrInvalidMove, "move has no name")
	}

	if !ValidType(moveType) {
		return Move{}, validationError(ErrInvalidMove, "move %s has unknown type %q", name, moveType)
	}

	if _, ok := STATUS_DISPLAY_NAMES[ailment]; !ok {
		return Move{}, validationError(ErrInvalidMove, "move %s has unknown ailment %d", name, ailment)
	}

	return Move{
		Name:    name,
		Power:   power,
		Type:    moveType,
		Special: special,
		Ailment: ailment,
	}, nil
}

func (m Move) IsNil() bool {
	return m.Name == ""
}

// IsStatusMove is true for moves that try to inflict an ailment on hit
func (m Move) IsStatusMove() bool {
	return m.Ailment != STATUS_NONE
}

func (m Move) String() string {
	if m.IsStatusMove() {
		return fmt.Sprintf("%s (%s, %d, %s)", m.Name, m.Type, m.Power, STATUS_DISPLAY_NAMES[m.Ailment])
	}

	return fmt.Sprintf("%s (%s, %d)", m.Name, m.Type, m.Power)
}

// moveFile is the on-disk shape of a move in moves.json
type moveFile struct {
	Name      string   `json:"name"`
	Power     uint     `json:"power"`
	Type      string   `json:"type"`
	Special   bool     `json:"special"`
	Ailment   string   `json:"ailment"`
	LearnedBy []string `json:"learned_by"`
}

func (m moveFile) toMove() (Move, error) {
	ailment, ok := STATUS_NAME_MAP[strings.ToLower(m.Ailment)]
	if !ok {
		return Move{}, validationError(ErrInvalidMove, "move %s has unknown ailment %q", m.Name, m.Ailment)
	}

	return NewMove(m.Name, m.Power, m.Type, m.Special, ailment)
}
