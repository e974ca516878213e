package race

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFirstReturnsWinner(t *testing.T) {
	fast := func(ctx context.Context) bool { return true }
	slow := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(10 * time.Second):
			return true
		}
	}

	w, err := First(context.Background(), slow, fast, slow)
	if err != nil {
		t.Fatal(err)
	}
	if w != 1 {
		t.Errorf("winner = %d, want 1", w)
	}
}

func TestFirstCancelsLosers(t *testing.T) {
	cancelled := make(chan struct{})
	winner := func(ctx context.Context) bool { return true }
	loser := func(ctx context.Context) bool {
		<-ctx.Done()
		close(cancelled)
		return false
	}

	if _, err := First(context.Background(), winner, loser); err != nil {
		t.Fatal(err)
	}
	select {
	case <-cancelled:
	default:
		t.Error("losing runner was not cancelled")
	}
}

func TestFirstNoWinner(t *testing.T) {
	fail := func(ctx context.Context) bool { return false }
	if _, err := First(context.Background(), fail, fail); !errors.Is(err, ErrNoWinner) {
		t.Errorf("err = %v, want ErrNoWinner", err)
	}
}

func TestFirstNoRunners(t *testing.T) {
	if _, err := First(context.Background()); !errors.Is(err, ErrNoWinner) {
		t.Errorf("err = %v, want ErrNoWinner", err)
	}
}

func TestFirstParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	wait := func(ctx context.Context) bool {
		<-ctx.Done()
		return false
	}
	if _, err := First(ctx, wait); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
