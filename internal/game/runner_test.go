package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitForPhase(t *testing.T, snaps <-chan Snapshot, phase string) Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case snap := <-snaps:
			if snap.Phase == phase {
				return snap
			}
		case <-timeout:
			t.Fatalf("timed out waiting for phase %q", phase)
		}
	}
}

func TestRunnerTypesAndContinues(t *testing.T) {
	s, err := NewSession(DefaultLevel(), Options{Tick: 2 * time.Millisecond, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	s.character.Pos = s.level.Coins[0]

	r := NewRunner(s, time.Millisecond)
	snaps := make(chan Snapshot, 16)
	r.Observe(func(snap Snapshot) {
		select {
		case snaps <- snap:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	snap := waitForPhase(t, snaps, PhaseAwaitingContinue.String())
	if snap.Dialogue == nil || snap.Dialogue.Text != DefaultLevel().Beats[0].Body {
		t.Errorf("dialogue after typing = %+v", snap.Dialogue)
	}
	if snap.Collected != 1 {
		t.Errorf("collected = %d, want 1", snap.Collected)
	}

	if !r.Send(Event{Kind: EventContinue}) {
		t.Fatal("Send refused the continue event")
	}
	snap = waitForPhase(t, snaps, PhaseInactive.String())
	if snap.Dialogue != nil {
		t.Errorf("dialogue still open after continue: %+v", snap.Dialogue)
	}

	r.Send(Event{Kind: EventKey, Key: "d", Down: true})
	timeout := time.After(5 * time.Second)
	for moved := false; !moved; {
		select {
		case snap := <-snaps:
			moved = snap.Character.Vel.X > 0
		case <-timeout:
			t.Fatal("character never moved right")
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunnerSendDropsWhenFull(t *testing.T) {
	r := NewRunner(newTestSession(t), 0)
	for i := 0; i < cap(r.events); i++ {
		if !r.Send(Event{Kind: EventReset}) {
			t.Fatalf("Send %d refused before the queue was full", i)
		}
	}
	if r.Send(Event{Kind: EventReset}) {
		t.Error("Send accepted an event on a full queue")
	}
}

func TestRunnerApplyTouch(t *testing.T) {
	s := newTestSession(t)
	r := NewRunner(s, 0)

	r.apply(Event{Kind: EventTouch, Down: true, X: 0.9})
	if got := s.Controls(); got != ControlRight {
		t.Fatalf("touch right = %v", got)
	}
	r.apply(Event{Kind: EventTouch, Down: false})
	if got := s.Controls(); got != 0 {
		t.Fatalf("after release = %v", got)
	}

	r.apply(Event{Kind: EventKey, Key: "a", Down: true})
	s.Tick()
	r.apply(Event{Kind: EventReset})
	if s.Ticks() != 0 || s.Controls() != 0 {
		t.Errorf("reset event left ticks=%d controls=%v", s.Ticks(), s.Controls())
	}
}
