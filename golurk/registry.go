package golurk

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

// BattleRegistry keeps track of which battle each player is in. A player can only be in one battle at a time.
//
// Finished battles remove themselves. The registry never takes a battle's lock.
type BattleRegistry struct {
	mu      sync.RWMutex
	battles map[string]*Battle
	logger  logr.Logger
}

func NewBattleRegistry() *BattleRegistry {
	return &BattleRegistry{battles: make(map[string]*Battle), logger: internalLogger()}
}

// CreateBattle creates and registers a new battle between p1 and p2
func (r *BattleRegistry) CreateBattle(p1 *Player, p2 *Player, opts ...BattleOption) (*Battle, error) {
	battle, err := NewBattle(p1, p2, opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range []string{p1.Name, p2.Name} {
		if existing, ok := r.battles[name]; ok {
			return nil, validationError(ErrAlreadyInBattle, "%s is already in battle %s", name, existing.ID)
		}
	}

	battle.onFinish = func(finished *Battle) {
		r.RemoveBattle(finished)
	}

	r.battles[p1.Name] = battle
	r.battles[p2.Name] = battle

	r.logger.WithName("registry").Info("battle registered", "battle_id", battle.ID.String(), "host", p1.Name, "client", p2.Name)

	return battle, nil
}

func (r *BattleRegistry) FindByPlayer(name string) (*Battle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	battle, ok := r.battles[name]
	return battle, ok
}

// RemoveBattle unregisters both players of the battle. It is only true for the call that actually removed it.
func (r *BattleRegistry) RemoveBattle(battle *Battle) bool {
	if battle == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := false
	for _, name := range []string{battle.hostName, battle.clientName} {
		// only remove entries that still point to this battle
		if r.battles[name] == battle {
			delete(r.battles, name)
			removed = true
		}
	}

	if removed {
		r.logger.WithName("registry").Info("battle removed", "battle_id", battle.ID.String())
	}

	return removed
}

// Len is the number of battles being tracked
func (r *BattleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(lo.Uniq(lo.Values(r.battles)))
}

// Battles lists every tracked battle once
func (r *BattleRegistry) Battles() []*Battle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Uniq(lo.Values(r.battles))
}
