package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/normalizer"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/httpx/upstream/n8n"
)

type fakeWebhook struct {
	configured bool
	raw        any
	err        error
	got        []n8n.LookupInput
}

func (f *fakeWebhook) Configured() bool { return f.configured }

func (f *fakeWebhook) Lookup(_ context.Context, in n8n.LookupInput) (any, error) {
	f.got = append(f.got, in)
	return f.raw, f.err
}

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(wh *fakeWebhook) *Service {
	svc := New(wh, normalizer.New(normalizer.WithClock(func() time.Time { return fixedNow })))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestFetch(t *testing.T) {
	wh := &fakeWebhook{
		configured: true,
		raw: []any{map[string]any{
			"id":         "p1",
			"likesCount": 10, "commentsCount": 5,
			"owner": map[string]any{"username": "owner", "followersCount": 100},
		}},
	}
	svc := newTestService(wh)

	got, err := svc.Fetch(context.Background(), FetchInput{Username: "owner", RequestID: "req-1"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	wantCall := []n8n.LookupInput{{Username: "owner", RequestID: "req-1", Timestamp: fixedNow}}
	if diff := cmp.Diff(wantCall, wh.got); diff != "" {
		t.Errorf("webhook call mismatch (-want +got):\n%s", diff)
	}
	if got.Profile.Username != "owner" || got.Profile.FollowersCount != 100 {
		t.Errorf("Profile = %+v, want owner with 100 followers", got.Profile)
	}
	if len(got.Posts) != 1 || got.Posts[0].EngagementRate != 15 {
		t.Errorf("Posts = %+v, want one post at 15%%", got.Posts)
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		username   string
		err        error
		want       error
	}{
		{"empty username", true, "", nil, entity.ErrEmptyUsername},
		{"not configured", false, "a", nil, entity.ErrWebhookNotConfigured},
		{"timeout", true, "a", fmt.Errorf("%w: deadline", n8n.ErrTimeout), entity.ErrWebhookTimeout},
		{"unreachable", true, "a", fmt.Errorf("%w: refused", n8n.ErrUnreachable), entity.ErrWebhookUnreachable},
		{"invalid body", true, "a", fmt.Errorf("%w: html", n8n.ErrInvalidBody), entity.ErrWebhookInvalidBody},
		{"no url", true, "a", n8n.ErrNoURL, entity.ErrWebhookNotConfigured},
		{"status", true, "a", &n8n.StatusError{StatusCode: http.StatusNotFound, Status: "Not Found"}, entity.ErrWebhookStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeWebhook{configured: tt.configured, err: tt.err})

			_, err := svc.Fetch(context.Background(), FetchInput{Username: tt.username})
			if !errors.Is(err, tt.want) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchStatusErrorKeepsDetail(t *testing.T) {
	svc := newTestService(&fakeWebhook{
		configured: true,
		err:        &n8n.StatusError{StatusCode: http.StatusBadGateway, Status: "Bad Gateway"},
	})

	_, err := svc.Fetch(context.Background(), FetchInput{Username: "a"})

	var statusErr *n8n.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Fetch() error = %v, want wrapped *n8n.StatusError with 502", err)
	}
}

func TestFetchUnexpectedError(t *testing.T) {
	boom := errors.New("boom")
	svc := newTestService(&fakeWebhook{configured: true, err: boom})

	_, err := svc.Fetch(context.Background(), FetchInput{Username: "a"})
	if !errors.Is(err, boom) {
		t.Errorf("Fetch() error = %v, want wrapped boom", err)
	}
	if errors.Is(err, entity.ErrWebhookUnreachable) {
		t.Errorf("Fetch() error = %v, unexpected errors must not be classified", err)
	}
}

func TestNormalize(t *testing.T) {
	svc := newTestService(&fakeWebhook{})

	got, err := svc.Normalize("x", []byte(`{"posts":[{"displayUrl":"d1","likes":3,"comments":2}],"followersCount":50}`))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got.Posts) != 1 || got.Posts[0].EngagementRate != 10 {
		t.Errorf("Posts = %+v, want one post at 10%%", got.Posts)
	}

	if _, err := svc.Normalize("x", []byte(`{`)); !errors.Is(err, entity.ErrInvalidPayload) {
		t.Errorf("Normalize() error = %v, want ErrInvalidPayload", err)
	}
}
