package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"maize_maturity/internal/models"
)

// fakeEventRepo captures List arguments.
type fakeEventRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events []models.PredictionEvent
	err    error
	calls  int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.PredictionEvent) error { return nil }

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.PredictionEvent, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, f.err
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := time.Date(2025, time.September, 10, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       LogFilter
		wantFrom time.Time
		wantTo   time.Time
		wantType string
		wantErr  error
	}{
		{name: "empty filter", in: LogFilter{}},
		{
			name: "inverted range",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name:     "utc and uppercase",
			in:       LogFilter{From: fromLocal, To: toUTC, Type: " rejected "},
			wantFrom: time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
			wantTo:   toUTC,
			wantType: models.EventRejected,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			from, to, typ, err := normalizeAndValidateFilter(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err: want %v, got %v", tc.wantErr, err)
			}
			if !from.Equal(tc.wantFrom) || !to.Equal(tc.wantTo) || typ != tc.wantType {
				t.Fatalf("got (%v, %v, %q); want (%v, %v, %q)", from, to, typ, tc.wantFrom, tc.wantTo, tc.wantType)
			}
		})
	}
}

func TestEventLogService_List(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{events: []models.PredictionEvent{{EventID: "1", Type: models.EventPrediction}}}
	svc := NewEventLogService(repo)

	out, err := svc.List(context.Background(), LogFilter{Type: "prediction"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || repo.gotType != models.EventPrediction {
		t.Fatalf("unexpected result %+v, type passed %q", out, repo.gotType)
	}

	_, err = svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("repo should not be queried for an invalid range, calls=%d", repo.calls)
	}

	repo.err = errors.New("db down")
	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, repo.err) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
