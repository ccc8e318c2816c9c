package golurk

import (
	"math/rand/v2"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type battleOptions struct {
	source       rand.Source
	chart        TypeChart
	itemCooldown int
	logger       logr.Logger
}

type BattleOption func(*battleOptions)

// WithRandSource sets where the battle gets its randomness. Battles without one get a crypto seeded PCG.
func WithRandSource(source rand.Source) BattleOption {
	return func(o *battleOptions) {
		o.source = source
	}
}

func WithTypeChart(chart TypeChart) BattleOption {
	return func(o *battleOptions) {
		o.chart = chart
	}
}

// WithBattleLogger gives the battle its own logger instead of the engine wide one
func WithBattleLogger(logger logr.Logger) BattleOption {
	return func(o *battleOptions) {
		o.logger = logger.WithName("golurk")
	}
}

// WithItemCooldown sets how many turns a player waits after using an item. Negative values are treated as 0.
func WithItemCooldown(turns int) BattleOption {
	return func(o *battleOptions) {
		o.itemCooldown = max(0, turns)
	}
}

// Battle is a single match between two players.
//
// Every exported method takes the battle's lock so actions on one battle never interleave.
// The players are shared with whoever created the battle but should only be changed through it once started.
type Battle struct {
	ID uuid.UUID

	// never change after NewBattle so the registry can read them without the lock
	hostName   string
	clientName string

	mu       sync.Mutex
	state    GameState
	status   int
	winner   string
	onFinish func(*Battle)
}

// NewBattle creates a battle that hasn't started yet. host is player1 and client is player2.
func NewBattle(host *Player, client *Player, opts ...BattleOption) (*Battle, error) {
	if host == nil || client == nil {
		return nil, validationError(ErrUnknownPlayer, "a battle needs two players")
	}

	if host.Name == client.Name {
		return nil, validationError(ErrSamePlayer, "%s cannot battle themselves", host.Name)
	}

	options := battleOptions{
		chart:        DefaultTypeChart(),
		itemCooldown: DEFAULT_ITEM_COOLDOWN,
		logger:       internalLogger(),
	}

	for _, opt := range opts {
		opt(&options)
	}

	battle := &Battle{
		ID:         uuid.New(),
		hostName:   host.Name,
		clientName: client.Name,
		state:      NewState(host, client, options.source, options.chart, options.itemCooldown),
		status:     BATTLE_NOT_STARTED,
	}

	battle.state.logger = options.logger.WithValues("battle_id", battle.ID.String())
	battle.state.logger.WithName("battle").Info("battle created", "host", host.Name, "client", client.Name)

	return battle, nil
}

// PlayerNames returns the names of player1 and player2
func (b *Battle) PlayerNames() (string, string) {
	return b.hostName, b.clientName
}

func (b *Battle) HasPlayer(name string) bool {
	return name == b.hostName || name == b.clientName
}

func (b *Battle) playerIndex(name string) int {
	switch name {
	case b.hostName:
		return HOST
	case b.clientName:
		return PEER
	default:
		return 0
	}
}

// ReadyForBattle is true when both teams are full
func (b *Battle) ReadyForBattle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.readyForBattle()
}

func (b *Battle) readyForBattle() bool {
	return len(b.state.HostPlayer.Team) == MAX_TEAM_SIZE && len(b.state.ClientPlayer.Team) == MAX_TEAM_SIZE
}

// Start picks who goes first and begins the battle. Players without an active pokemon
// send out the first one on their team that can still fight.
func (b *Battle) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BATTLE_NOT_STARTED {
		return stateError(ErrAlreadyStarted, "battle %s is %s", b.ID, BATTLE_STATE_NAMES[b.status])
	}

	if !b.readyForBattle() {
		return stateError(ErrNotReady, "%s has %d pokemon and %s has %d", b.hostName, len(b.state.HostPlayer.Team), b.clientName, len(b.state.ClientPlayer.Team))
	}

	// find every lead before changing anything
	leads := make(map[int]int, 2)
	for _, index := range []int{HOST, PEER} {
		player := b.state.GetPlayer(index)
		if active := player.GetActivePokemon(); active != nil && active.Alive() {
			leads[index] = player.ActivePokeIndex
			continue
		}

		_, lead, found := lo.FindIndexOf(player.Team, func(pokemon Pokemon) bool {
			return pokemon.Alive()
		})
		if !found {
			return stateError(ErrNotReady, "%s has no pokemon that can fight", player.Name)
		}

		leads[index] = lead
	}

	for index, lead := range leads {
		b.state.GetPlayer(index).ActivePokeIndex = lead
	}

	if b.state.CreateRng().IntN(2) == 0 {
		b.state.TurnOwner = HOST
	} else {
		b.state.TurnOwner = PEER
	}

	b.state.Turn = 1
	b.status = BATTLE_IN_PROGRESS

	b.state.MessageHistory = append(b.state.MessageHistory,
		lo.Map([]int{HOST, PEER}, func(index int, _ int) string {
			player := b.state.GetPlayer(index)
			return player.Name + " sent in " + player.GetActivePokemon().Name() + "!"
		})...)

	b.state.logger.WithName("battle").Info("battle started", "host", b.hostName, "client", b.clientName, "first", b.state.GetPlayer(b.state.TurnOwner).Name)

	return nil
}

// State is one of the BATTLE_* constants
func (b *Battle) State() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.status
}

func (b *Battle) Turn() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state.Turn
}

// TurnOwner returns the name of the player whose turn it is, or "" before the battle starts
func (b *Battle) TurnOwner() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.turnOwnerName()
}

func (b *Battle) turnOwnerName() string {
	switch b.state.TurnOwner {
	case HOST:
		return b.hostName
	case PEER:
		return b.clientName
	default:
		return ""
	}
}

// Winner is the name of the winning player once the battle is finished
func (b *Battle) Winner() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.winner
}

// BattleView is a copy of a battle's state that is safe to read and keep around
type BattleView struct {
	ID        uuid.UUID
	State     int
	Turn      int
	TurnOwner string
	Winner    string
	Host      Player
	Client    Player
	Messages  []string
}

// Opponent returns the view of the player facing playerName
func (v BattleView) Opponent(playerName string) Player {
	if v.Host.Name == playerName {
		return v.Client
	}

	return v.Host
}

// Self returns the view of playerName
func (v BattleView) Self(playerName string) Player {
	if v.Host.Name == playerName {
		return v.Host
	}

	return v.Client
}

func (b *Battle) Snapshot() BattleView {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot()
}

func (b *Battle) snapshot() BattleView {
	return BattleView{
		ID:        b.ID,
		State:     b.status,
		Turn:      b.state.Turn,
		TurnOwner: b.turnOwnerName(),
		Winner:    b.winner,
		Host:      b.state.HostPlayer.Clone(),
		Client:    b.state.ClientPlayer.Clone(),
		Messages:  append([]string(nil), b.state.MessageHistory...),
	}
}
