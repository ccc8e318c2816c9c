package golurk

import (
	"fmt"
	"strings"
)

// Item is a consumable that a player uses on one of their own pokemon.
// Amount is only used by ITEM_HEAL and Fraction only by ITEM_REVIVE.
type Item struct {
	Name     string  `yaml:"name"`
	Kind     int     `yaml:"-"`
	Amount   uint    `yaml:"amount"`
	Fraction float64 `yaml:"fraction"`
}

func NewHealItem(name string, amount uint) Item {
	return Item{Name: name, Kind: ITEM_HEAL, Amount: amount}
}

func NewReviveItem(name string, fraction float64) Item {
	return Item{Name: name, Kind: ITEM_REVIVE, Fraction: fraction}
}

func NewCureItem(name string) Item {
	return Item{Name: name, Kind: ITEM_CURE}
}

// CheckTarget returns an error if using the item on the target would do nothing.
// Nothing is changed so it is safe to call before deciding whether to consume the item.
func (i Item) CheckTarget(target Pokemon) error {
	switch i.Kind {
	case ITEM_HEAL:
		if !target.Alive() {
			return validationError(ErrFainted, "%s can't be healed, it needs to be revived", target.Name())
		}
		if target.Hp == target.MaxHp || i.Amount == 0 {
			return validationError(ErrItemNoEffect, "%s is already at full health", target.Name())
		}
	case ITEM_REVIVE:
		if target.Alive() {
			return validationError(ErrItemNoEffect, "%s hasn't fainted", target.Name())
		}
	case ITEM_CURE:
		if !target.Alive() {
			return validationError(ErrFainted, "%s has fainted", target.Name())
		}
		if target.Status == STATUS_NONE {
			return validationError(ErrItemNoEffect, "%s has no status to cure", target.Name())
		}
	default:
		return validationError(ErrItemNoEffect, "%s is not a usable item", i.Name)
	}

	return nil
}

// Apply uses the item on the target and returns the message to show for it.
// CheckTarget should have passed first.
func (i Item) Apply(target *Pokemon) string {
	switch i.Kind {
	case ITEM_HEAL:
		healed := target.Heal(i.Amount)
		return fmt.Sprintf("%s restored %d hp!", target.Name(), healed)
	case ITEM_REVIVE:
		restored := target.Revive(i.Fraction)
		return fmt.Sprintf("%s was revived with %d hp!", target.Name(), restored)
	case ITEM_CURE:
		target.CureStatus()
		return fmt.Sprintf("%s has been cured of its afflictions!", target.Name())
	}

	return ""
}

// itemFile is the yaml shape of an item in items.yaml
type itemFile struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Amount   uint    `yaml:"amount"`
	Fraction float64 `yaml:"fraction"`
	// how many a default bag starts with
	Starter int `yaml:"starter"`
}

func (f itemFile) toItem() (Item, error) {
	kind, ok := ITEM_KIND_MAP[strings.ToLower(f.Kind)]
	if !ok {
		return Item{}, fmt.Errorf("item %s has unknown kind %q", f.Name, f.Kind)
	}

	if kind == ITEM_REVIVE && (f.Fraction <= 0 || f.Fraction > 1) {
		return Item{}, fmt.Errorf("revive item %s needs a fraction in (0, 1], got %f", f.Name, f.Fraction)
	}

	return Item{Name: f.Name, Kind: kind, Amount: f.Amount, Fraction: f.Fraction}, nil
}
