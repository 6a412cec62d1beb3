package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCompletion_ForwardOnly(t *testing.T) {
	c := newCompletion("t")
	if c.Stage() != StagePending {
		t.Fatalf("initial stage: got %s, want pending", c.Stage())
	}
	for _, s := range []Stage{StageLoading, StageDecoding, StageTransforming, StageEncoding} {
		if !c.advance(s) {
			t.Fatalf("advance(%s) refused", s)
		}
	}
	if c.advance(StageDecoding) {
		t.Error("advance moved backwards")
	}
	if c.advance(StageEncoding) {
		t.Error("advance accepted the current stage")
	}
	if c.advance(StageResolved) {
		t.Error("advance accepted a terminal stage")
	}
}

func TestCompletion_SettlesOnce(t *testing.T) {
	c := newCompletion("t")
	if !c.resolve([]byte("ok")) {
		t.Fatal("first resolve refused")
	}
	if c.reject(errors.New("late")) {
		t.Error("reject after resolve accepted")
	}
	if c.resolve([]byte("again")) {
		t.Error("second resolve accepted")
	}
	if c.advance(StageEncoding) {
		t.Error("advance after settle accepted")
	}

	data, err := c.Wait(context.Background())
	if err != nil || string(data) != "ok" {
		t.Errorf("Wait: got (%q, %v), want (ok, nil)", data, err)
	}
	if c.Stage() != StageResolved {
		t.Errorf("stage: got %s, want resolved", c.Stage())
	}
}

func TestCompletion_ConcurrentSettle(t *testing.T) {
	c := newCompletion("t")
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var ok bool
			if i%2 == 0 {
				ok = c.resolve([]byte{byte(i)})
			} else {
				ok = c.reject(errors.New("x"))
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("settled %d times, want 1", wins)
	}
}

func TestCompletion_RejectErr(t *testing.T) {
	c := newCompletion("t")
	if c.Err() != nil {
		t.Error("Err non-nil while pending")
	}
	want := errors.New("decode failed: nope")
	c.reject(want)
	if !errors.Is(c.Err(), want) {
		t.Errorf("Err: got %v, want %v", c.Err(), want)
	}
	if _, err := c.Wait(context.Background()); !errors.Is(err, want) {
		t.Errorf("Wait err: got %v", err)
	}
	select {
	case <-c.Done():
	default:
		t.Error("Done not closed after reject")
	}
}

func TestCompletion_WaitContext(t *testing.T) {
	c := newCompletion("t")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait: got %v, want deadline exceeded", err)
	}
	if c.Stage() != StagePending {
		t.Error("abandoning the wait changed the stage")
	}
}

func TestStage_String(t *testing.T) {
	if StageTransforming.String() != "transforming" {
		t.Errorf("got %q", StageTransforming.String())
	}
	if Stage(99).String() != "unknown" {
		t.Errorf("got %q", Stage(99).String())
	}
}
