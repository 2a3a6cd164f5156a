package normalizer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

// TimestampLayout is the ISO-8601 form used for canonical timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Type tags that mark a post as video or carousel, compared case-insensitively
var (
	videoTags    = map[string]bool{"video": true, "graphvideo": true, "clips": true, "reel": true, "reels": true, "igtv": true}
	carouselTags = map[string]bool{"sidecar": true, "graphsidecar": true, "carousel": true, "carousel_album": true}
)

var (
	likesChain    = fields(asCount, "likesCount", "likes", "likeCount", "edge_liked_by.count", "edge_media_preview_like.count")
	commentsChain = fields(asCount, "commentsCount", "comments", "commentCount", "edge_media_to_comment.count")

	typeTagKeys    = []string{"type", "productType", "media_type", "mediaType", "__typename"}
	videoURLChain  = fields(asURL, "videoUrl", "video_url")
	videoFlagChain = fields(asTrue, "isVideo", "is_video")

	genericURLChain = fields(asURL, "url", "media_url", "mediaUrl")
	displayURLChain = fields(asURL, "displayUrl", "display_url", "imageUrl", "image_url")
	thumbnailChain  = fields(asURL, "displayUrl", "display_url", "thumbnailUrl", "thumbnail_url", "thumbnail_src", "cover")

	videoMediaChain = videoURLChain.then(genericURLChain)
	imageMediaChain = displayURLChain.then(genericURLChain)

	timestampChain = fields(asTimestamp, "timestamp", "date").then(fields(asUnixTimestamp, "takenAt", "taken_at", "taken_at_timestamp"))

	idChain      = fields(asText, "id")
	captionChain = fields(asCaption, "caption")
)

// MapPosts converts raw post items into canonical posts in input order.
// EngagementRate is left at 0 for Aggregate to fill in.
func MapPosts(items []Object, now time.Time) []entity.Post {
	posts := make([]entity.Post, 0, len(items))
	seen := make(map[string]bool, len(items))

	for i, item := range items {
		p := MapPost(item, i, now)
		if seen[p.ID] {
			p.ID = uniqueID(p.ID, i, seen)
		}
		seen[p.ID] = true
		posts = append(posts, p)
	}

	return posts
}

// uniqueID suffixes a repeated id with the item index, then with a counter
// while the suffixed form is still taken
func uniqueID(id string, index int, seen map[string]bool) string {
	candidate := fmt.Sprintf("%s-%d", id, index)
	for n := 1; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d-%d", id, index, n)
	}
	return candidate
}

// MapPost converts a single raw item. index and now only feed the synthesized id and the
// default timestamp.
func MapPost(item Object, index int, now time.Time) entity.Post {
	mediaType := detectMediaType(item)

	mediaChain := imageMediaChain
	if mediaType == entity.MediaTypeVideo {
		mediaChain = videoMediaChain
	}
	mediaURL := mediaChain.or("", item)

	thumbnailURL, ok := thumbnailChain.resolve(item)
	if !ok {
		thumbnailURL = firstImageURL(item)
	}

	if mediaURL == "" && thumbnailURL != "" {
		mediaURL = thumbnailURL
	}
	if thumbnailURL == "" && mediaURL != "" {
		thumbnailURL = mediaURL
	}

	return entity.Post{
		ID:           idChain.or(fmt.Sprintf("post-%d-%d", index, now.UnixMilli()), item),
		Caption:      captionChain.or("", item),
		Likes:        likesChain.or(0, item),
		Comments:     commentsChain.or(0, item),
		MediaType:    mediaType,
		MediaURL:     mediaURL,
		ThumbnailURL: thumbnailURL,
		Timestamp:    timestampChain.or(now.UTC().Format(TimestampLayout), item),
	}
}

func detectMediaType(item Object) entity.MediaType {
	tags := typeTags(item)

	for _, tag := range tags {
		if videoTags[tag] {
			return entity.MediaTypeVideo
		}
	}
	if _, ok := videoURLChain.resolve(item); ok {
		return entity.MediaTypeVideo
	}
	if _, ok := videoFlagChain.resolve(item); ok {
		return entity.MediaTypeVideo
	}

	for _, tag := range tags {
		if carouselTags[tag] {
			return entity.MediaTypeCarousel
		}
	}
	if images, ok := item.Lookup("images"); ok {
		if list, ok := asList(images); ok && len(list) > 1 {
			return entity.MediaTypeCarousel
		}
	}

	return entity.MediaTypePhoto
}

func typeTags(item Object) []string {
	tags := make([]string, 0, len(typeTagKeys))
	for _, key := range typeTagKeys {
		if v, ok := item.Lookup(key); ok {
			if s, ok := v.(string); ok {
				tags = append(tags, strings.ToLower(strings.TrimSpace(s)))
			}
		}
	}
	return tags
}

// firstImageURL reads the first entry of an "images" collection, which may be
// a plain URL string or an object with url/src
func firstImageURL(item Object) string {
	v, ok := item.Lookup("images")
	if !ok {
		return ""
	}
	list, ok := asList(v)
	if !ok || len(list) == 0 {
		return ""
	}
	u, _ := asURL(list[0])
	return u
}

// asTimestamp accepts an ISO string as-is, or a numeric Unix time
func asTimestamp(v any) (string, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	return asUnixTimestamp(v)
}

// Last millisecond of year 9999, the largest instant the ISO layout renders
const maxUnixMillis = 253402300799999

// asUnixTimestamp converts Unix seconds to ISO-8601. Values of 1e12 and above are milliseconds.
// Instants past year 9999 are rejected.
func asUnixTimestamp(v any) (string, bool) {
	switch v.(type) {
	case bool, map[string]any, Object, []any:
		return "", false
	}
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return "", false
	}
	ms := f * 1000
	if f >= 1e12 {
		ms = f
	}
	if ms > maxUnixMillis {
		return "", false
	}
	return time.UnixMilli(int64(ms)).UTC().Format(TimestampLayout), true
}
