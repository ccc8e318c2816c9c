package golurk

import (
	"context"
	"math/rand/v2"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pokeduel/golurk"

type ServiceOption func(*Service)

func WithCatalog(catalog *Catalog) ServiceOption {
	return func(s *Service) {
		s.catalog = catalog
	}
}

func WithChart(chart TypeChart) ServiceOption {
	return func(s *Service) {
		s.chart = chart
	}
}

func WithCooldown(turns int) ServiceOption {
	return func(s *Service) {
		s.itemCooldown = max(0, turns)
	}
}

// WithSourceFactory sets how each new battle gets its random source
func WithSourceFactory(factory func() rand.Source) ServiceOption {
	return func(s *Service) {
		s.newSource = factory
	}
}

// WithLogger gives the service and every battle it creates their own logger instead of the engine wide one
func WithLogger(logger logr.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = &logger
	}
}

func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// Service is the entry point for whatever turns player commands into battle actions.
// It owns the registry of running battles along with the catalog and type chart every battle shares.
type Service struct {
	registry     *BattleRegistry
	catalog      *Catalog
	chart        TypeChart
	itemCooldown int
	newSource    func() rand.Source
	tracer       trace.Tracer
	// nil uses the engine wide logger
	logger *logr.Logger
}

func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		registry:     NewBattleRegistry(),
		chart:        DefaultTypeChart(),
		itemCooldown: DEFAULT_ITEM_COOLDOWN,
		newSource: func() rand.Source {
			return NewRandomSource()
		},
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger != nil {
		s.registry.logger = s.logger.WithName("golurk")
	}

	return s
}

func (s *Service) Registry() *BattleRegistry {
	return s.registry
}

// Catalog can be nil if the service was made without one
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

func (s *Service) Chart() TypeChart {
	return s.chart
}

func (s *Service) CreateBattle(ctx context.Context, p1 *Player, p2 *Player) (*Battle, error) {
	_, span := s.tracer.Start(ctx, "battle.create")
	defer span.End()

	battleOpts := []BattleOption{
		WithRandSource(s.newSource()),
		WithTypeChart(s.chart),
		WithItemCooldown(s.itemCooldown),
	}
	if s.logger != nil {
		battleOpts = append(battleOpts, WithBattleLogger(*s.logger))
	}

	battle, err := s.registry.CreateBattle(p1, p2, battleOpts...)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("battle.id", battle.ID.String()),
		attribute.String("battle.host", p1.Name),
		attribute.String("battle.client", p2.Name),
	)

	return battle, nil
}

func (s *Service) StartBattle(ctx context.Context, battle *Battle) error {
	_, span := s.tracer.Start(ctx, "battle.start", trace.WithAttributes(attribute.String("battle.id", battle.ID.String())))
	defer span.End()

	if err := battle.Start(); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.String("battle.first", battle.TurnOwner()))

	return nil
}

// AbandonBattle stops a battle that can't go on and frees both players for new battles
func (s *Service) AbandonBattle(ctx context.Context, battle *Battle, reason string) bool {
	_, span := s.tracer.Start(ctx, "battle.abandon", trace.WithAttributes(
		attribute.String("battle.id", battle.ID.String()),
		attribute.String("reason", reason),
	))
	defer span.End()

	return battle.Abandon(reason)
}

func (s *Service) Attack(ctx context.Context, battle *Battle, playerName string, moveName string) (ActionResult, error) {
	return s.act(ctx, "battle.attack", battle, playerName, NewAttackAction(moveName),
		attribute.String("move", moveName))
}

func (s *Service) UseItem(ctx context.Context, battle *Battle, playerName string, itemName string, targetName string) (ActionResult, error) {
	return s.act(ctx, "battle.use_item", battle, playerName, NewItemAction(itemName, targetName),
		attribute.String("item", itemName), attribute.String("target", targetName))
}

func (s *Service) ChangeActive(ctx context.Context, battle *Battle, playerName string, pokemonName string) (ActionResult, error) {
	return s.act(ctx, "battle.change_active", battle, playerName, NewSwitchAction(pokemonName),
		attribute.String("pokemon", pokemonName))
}

// Act runs any action for a player. Attack, UseItem and ChangeActive are shortcuts for it.
func (s *Service) Act(ctx context.Context, battle *Battle, playerName string, action Action) (ActionResult, error) {
	return s.act(ctx, "battle.act", battle, playerName, action)
}

func (s *Service) act(ctx context.Context, spanName string, battle *Battle, playerName string, action Action, attrs ...attribute.KeyValue) (ActionResult, error) {
	_, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("battle.id", battle.ID.String()),
		attribute.String("player", playerName),
	))
	defer span.End()

	span.SetAttributes(attrs...)

	result, err := battle.Act(playerName, action)
	if err != nil {
		recordError(span, err)
		return result, err
	}

	span.SetAttributes(
		attribute.Int("battle.turn", result.Turn),
		attribute.Bool("battle.finished", result.Finished),
	)

	if result.Finished {
		span.SetAttributes(attribute.String("battle.winner", result.Winner))
	}

	return result, nil
}

// GetSnapshot returns a copy of the battle playerName is in
func (s *Service) GetSnapshot(ctx context.Context, playerName string) (BattleView, error) {
	_, span := s.tracer.Start(ctx, "battle.snapshot", trace.WithAttributes(attribute.String("player", playerName)))
	defer span.End()

	battle, ok := s.registry.FindByPlayer(playerName)
	if !ok {
		err := validationError(ErrNotInBattle, "%s is not in a battle", playerName)
		recordError(span, err)
		return BattleView{}, err
	}

	return battle.Snapshot(), nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.kind", ErrorCode(err).String()))
}
