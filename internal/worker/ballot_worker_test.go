package worker

import (
	"context"
	"testing"
	"time"
)

func TestBallotWorkerStopsOnClosedChannel(t *testing.T) {
	ch := make(chan BallotEvent, 2)
	ch <- BallotEvent{ElectionID: "e1", UserID: "u1", Offices: 2, Blank: 1}
	close(ch)

	done := make(chan struct{})
	go func() {
		NewBallotWorker(ch, nil).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after channel close")
	}
	if len(ch) != 0 {
		t.Fatalf("expected queued event to be consumed")
	}
}

func TestBallotWorkerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewBallotWorker(make(chan BallotEvent), nil).Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
