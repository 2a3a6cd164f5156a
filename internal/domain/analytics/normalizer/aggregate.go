package normalizer

import (
	"math"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

// EngagementRate returns (likes + comments) / followers * 100 rounded to 2 decimals,
// or 0 when there are no followers
func EngagementRate(likes, comments, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	return round2((float64(likes) + float64(comments)) / float64(followers) * 100)
}

// Aggregate returns copies of posts with EngagementRate filled in, plus the summary.
// The input slice is not modified. Empty input yields a zero summary.
func Aggregate(posts []entity.Post, followers int64) ([]entity.Post, entity.AnalyticsSummary) {
	rated := make([]entity.Post, len(posts))

	var (
		totalLikes    int64
		totalComments int64
		likesSum      float64
		commentsSum   float64
		rateSum       float64
		best          entity.BestPost
	)

	for i, p := range posts {
		p.EngagementRate = EngagementRate(p.Likes, p.Comments, followers)
		rated[i] = p

		totalLikes = entity.AddCounts(totalLikes, p.Likes)
		totalComments = entity.AddCounts(totalComments, p.Comments)
		likesSum += float64(p.Likes)
		commentsSum += float64(p.Comments)
		rateSum += p.EngagementRate

		// Strict comparison keeps the earliest post on ties
		if i == 0 || p.Engagements() > entity.AddCounts(best.Likes, best.Comments) {
			best = entity.BestPost{ID: p.ID, Likes: p.Likes, Comments: p.Comments}
		}
	}

	summary := entity.AnalyticsSummary{
		TotalEngagements: entity.AddCounts(totalLikes, totalComments),
		BestPost:         best,
	}

	if n := len(posts); n > 0 {
		summary.AvgLikes = clampCount(math.Round(likesSum / float64(n)))
		summary.AvgComments = clampCount(math.Round(commentsSum / float64(n)))
		summary.OverallEngagementRate = round2(rateSum / float64(n))
	}

	return rated, summary
}
