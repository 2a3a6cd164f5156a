package entity

// AnalyticsSummary represents aggregated engagement figures for a set of posts
type AnalyticsSummary struct {
	AvgLikes              int64    `json:"avg_likes"`
	AvgComments           int64    `json:"avg_comments"`
	OverallEngagementRate float64  `json:"overall_engagement_rate"`
	TotalEngagements      int64    `json:"total_engagements"`
	BestPost              BestPost `json:"best_post"`
}

// BestPost identifies the post with the most likes plus comments
type BestPost struct {
	ID       string `json:"id"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}

// AnalyticsResult is the normalized output of a single lookup
type AnalyticsResult struct {
	Profile   Profile          `json:"profile"`
	Posts     []Post           `json:"posts"`
	Analytics AnalyticsSummary `json:"analytics"`
}

// Clone returns a deep copy so callers can mutate the result freely
func (r AnalyticsResult) Clone() AnalyticsResult {
	posts := make([]Post, len(r.Posts))
	copy(posts, r.Posts)
	r.Posts = posts
	return r
}
