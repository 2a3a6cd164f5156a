package normalizer

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name                      string
		likes, comments, follower int64
		want                      float64
	}{
		{"basic", 10, 5, 100, 15},
		{"rounded", 1, 0, 3, 33.33},
		{"rounded up", 2, 0, 3, 66.67},
		{"zero followers", 1000, 50, 0, 0},
		{"negative followers", 10, 0, -5, 0},
		{"above hundred percent", 300, 0, 100, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EngagementRate(tt.likes, tt.comments, tt.follower); got != tt.want {
				t.Errorf("EngagementRate(%d, %d, %d) = %v, want %v", tt.likes, tt.comments, tt.follower, got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	posts := []entity.Post{
		{ID: "a", Likes: 1, Comments: 0},
		{ID: "b", Likes: 2, Comments: 0},
	}

	rated, summary := Aggregate(posts, 3)

	wantRates := []float64{33.33, 66.67}
	for i, p := range rated {
		if p.EngagementRate != wantRates[i] {
			t.Errorf("posts[%d].EngagementRate = %v, want %v", i, p.EngagementRate, wantRates[i])
		}
	}

	want := entity.AnalyticsSummary{
		AvgLikes:              2, // 1.5 rounds up
		AvgComments:           0,
		OverallEngagementRate: 50,
		TotalEngagements:      3,
		BestPost:              entity.BestPost{ID: "b", Likes: 2, Comments: 0},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	for i, p := range posts {
		if p.EngagementRate != 0 {
			t.Errorf("input posts[%d] was modified: EngagementRate = %v", i, p.EngagementRate)
		}
	}
}

func TestAggregateZeroFollowers(t *testing.T) {
	posts := []entity.Post{
		{ID: "a", Likes: 500, Comments: 20},
		{ID: "b", Likes: 900, Comments: 1},
	}

	rated, summary := Aggregate(posts, 0)

	for i, p := range rated {
		if p.EngagementRate != 0 {
			t.Errorf("posts[%d].EngagementRate = %v, want 0", i, p.EngagementRate)
		}
	}
	if summary.OverallEngagementRate != 0 {
		t.Errorf("OverallEngagementRate = %v, want 0", summary.OverallEngagementRate)
	}
	if summary.AvgLikes != 700 || summary.AvgComments != 11 {
		t.Errorf("AvgLikes, AvgComments = %d, %d, want 700, 11", summary.AvgLikes, summary.AvgComments)
	}
	if summary.BestPost.ID != "b" {
		t.Errorf("BestPost.ID = %q, want %q", summary.BestPost.ID, "b")
	}
}

func TestAggregateSaturatesCounts(t *testing.T) {
	posts := []entity.Post{
		{ID: "a", Likes: math.MaxInt64, Comments: 5},
		{ID: "b", Likes: math.MaxInt64, Comments: 1},
	}

	rated, summary := Aggregate(posts, 100)

	for i, p := range rated {
		if p.EngagementRate <= 0 {
			t.Errorf("posts[%d].EngagementRate = %v, want positive", i, p.EngagementRate)
		}
	}
	want := entity.AnalyticsSummary{
		AvgLikes:              math.MaxInt64,
		AvgComments:           3,
		OverallEngagementRate: rated[0].EngagementRate,
		TotalEngagements:      math.MaxInt64,
		BestPost:              entity.BestPost{ID: "a", Likes: math.MaxInt64, Comments: 5},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateBestPostTieKeepsFirst(t *testing.T) {
	posts := []entity.Post{
		{ID: "low", Likes: 1, Comments: 1},
		{ID: "first", Likes: 5, Comments: 5},
		{ID: "second", Likes: 9, Comments: 1},
		{ID: "third", Likes: 0, Comments: 10},
	}

	_, summary := Aggregate(posts, 100)

	want := entity.BestPost{ID: "first", Likes: 5, Comments: 5}
	if diff := cmp.Diff(want, summary.BestPost); diff != "" {
		t.Errorf("BestPost mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateEmpty(t *testing.T) {
	rated, summary := Aggregate(nil, 100)

	if rated == nil || len(rated) != 0 {
		t.Errorf("rated = %#v, want empty non-nil slice", rated)
	}
	if diff := cmp.Diff(entity.AnalyticsSummary{}, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
