package golurk

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestService(recorder *tracetest.SpanRecorder) *Service {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return NewService(
		WithSourceFactory(func() rand.Source { return lowSource{} }),
		WithTracer(provider.Tracer("test")),
	)
}

func TestServiceBattle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(tracetest.NewSpanRecorder())
	ash := fullPlayer(t, "ash")
	gary := fullPlayer(t, "gary")

	battle, err := service.CreateBattle(ctx, ash, gary)
	if err != nil {
		t.Fatalf("create failed: %s", err)
	}

	if _, err := service.CreateBattle(ctx, ash, fullPlayer(t, "misty")); !errors.Is(err, ErrAlreadyInBattle) {
		t.Fatalf("expected ErrAlreadyInBattle, got %v", err)
	}

	if err := service.StartBattle(ctx, battle); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if _, err := service.Attack(ctx, battle, "gary", "Tackle"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	if _, err := service.Attack(ctx, battle, "ash", "Tackle"); err != nil {
		t.Fatalf("attack failed: %s", err)
	}

	if _, err := service.ChangeActive(ctx, battle, "gary", "gary-3"); err != nil {
		t.Fatalf("change active failed: %s", err)
	}

	result, err := service.UseItem(ctx, battle, "ash", "Potion", "gary-0")
	if !errors.Is(err, ErrNotInRoster) || result.Code != ERRKIND_VALIDATION {
		t.Fatalf("using an item on the other player's pokemon should fail, got %v", err)
	}

	view, err := service.GetSnapshot(ctx, "gary")
	if err != nil {
		t.Fatalf("snapshot failed: %s", err)
	}

	if view.Turn != 3 || view.TurnOwner != "ash" {
		t.Fatalf("expected ash's turn 3, got %s's turn %d", view.TurnOwner, view.Turn)
	}

	if view.Client.Team[0].Hp != 60 || view.Client.GetActivePokemon().Name() != "gary-3" {
		t.Fatalf("snapshot does not match the battle: %+v", view.Client)
	}

	// changing the snapshot doesn't touch the battle
	view.Client.Team[0].Hp = 1
	if gary.GetPokemon(0).Hp != 60 {
		t.Fatalf("snapshot shares state with the battle")
	}

	if _, err := service.GetSnapshot(ctx, "misty"); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("expected ErrNotInBattle, got %v", err)
	}
}

func TestServiceSpans(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	service := newTestService(recorder)

	battle, err := service.CreateBattle(ctx, fullPlayer(t, "ash"), fullPlayer(t, "gary"))
	if err != nil {
		t.Fatalf("create failed: %s", err)
	}

	_, _ = service.Attack(ctx, battle, "ash", "Tackle")

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if spans[0].Name() != "battle.create" || spans[0].Status().Code == codes.Error {
		t.Fatalf("unexpected create span %s (%s)", spans[0].Name(), spans[0].Status().Description)
	}

	if spans[1].Name() != "battle.attack" || spans[1].Status().Code != codes.Error {
		t.Fatalf("attacking before the battle started should be an error span, got %s (%v)", spans[1].Name(), spans[1].Status())
	}
}

func TestServiceIsolation(t *testing.T) {
	ctx := context.Background()
	first := NewService()
	second := NewService()

	if _, err := first.CreateBattle(ctx, fullPlayer(t, "ash"), fullPlayer(t, "gary")); err != nil {
		t.Fatalf("create failed: %s", err)
	}

	if _, err := second.CreateBattle(ctx, fullPlayer(t, "ash"), fullPlayer(t, "gary")); err != nil {
		t.Fatalf("services should not share battles: %s", err)
	}
}

func TestAbandonBattle(t *testing.T) {
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	service := newTestService(recorder)

	battle, err := service.CreateBattle(ctx, fullPlayer(t, "ash"), fullPlayer(t, "gary"))
	if err != nil {
		t.Fatalf("create failed: %s", err)
	}

	if err := service.StartBattle(ctx, battle); err != nil {
		t.Fatalf("start failed: %s", err)
	}

	if !service.AbandonBattle(ctx, battle, "stalled") {
		t.Fatalf("first abandon should stop the battle")
	}

	if service.AbandonBattle(ctx, battle, "stalled") {
		t.Fatalf("a battle can only be abandoned once")
	}

	view := battle.Snapshot()
	if view.State != BATTLE_ABANDONED || view.Winner != "" {
		t.Fatalf("expected an abandoned battle without a winner, got %s won by %q", BATTLE_STATE_NAMES[view.State], view.Winner)
	}

	if last := view.Messages[len(view.Messages)-1]; last != "The battle was abandoned: stalled" {
		t.Fatalf("unexpected last message %q", last)
	}

	if _, err := service.Attack(ctx, battle, view.TurnOwner, "Tackle"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("expected ErrNotInProgress, got %v", err)
	}

	if _, ok := battle.CheckWin(); ok {
		t.Fatalf("an abandoned battle has no winner")
	}

	if _, err := service.GetSnapshot(ctx, "ash"); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("expected ErrNotInBattle, got %v", err)
	}

	if _, err := service.CreateBattle(ctx, fullPlayer(t, "ash"), fullPlayer(t, "gary")); err != nil {
		t.Fatalf("players should be free after abandoning: %s", err)
	}

	if spans := recorder.Ended(); spans[2].Name() != "battle.abandon" {
		t.Fatalf("expected an abandon span, got %s", spans[2].Name())
	}
}
