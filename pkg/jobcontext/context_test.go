package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestJobBegin_CarriesMetadata(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "meeting-1", "enrichment")
	defer cancel()

	meta := GetJobMetadata(ctx)
	if meta.MeetingID != "meeting-1" {
		t.Fatalf("unexpected meeting id %q", meta.MeetingID)
	}
	if meta.JobType != "enrichment" {
		t.Fatalf("unexpected job type %q", meta.JobType)
	}
	if meta.MaxRetries != 3 {
		t.Fatalf("unexpected max retries %d", meta.MaxRetries)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline on the job context")
	}
}

func TestJobEnd_SuccessRunsOnce(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "m", "enrichment")
	defer cancel()

	calls := 0
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestJobEnd_NonRetryableStopsImmediately(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "m", "enrichment")
	defer cancel()

	calls := 0
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return fmt.Errorf("%w: classification response is not valid JSON", ErrNonRetryable)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if !errors.Is(err, ErrNonRetryable) {
		t.Fatalf("expected wrapped ErrNonRetryable, got %v", err)
	}
}

func TestJobEnd_RecoversPanic(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "m", "enrichment")
	defer cancel()

	err := JobEnd(ctx, func(context.Context) error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"non-retryable sentinel", fmt.Errorf("%w: bad json", ErrNonRetryable), false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"deadlock", errors.New("pq: deadlock detected"), true},
		{"throttled", errors.New("groq returned status 429"), true},
		{"bad gateway", errors.New("groq returned status 502"), true},
		{"plain failure", errors.New("something else"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err); got != tc.want {
				t.Fatalf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
