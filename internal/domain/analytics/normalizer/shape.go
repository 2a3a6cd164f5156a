package normalizer

// ShapeKind identifies a recognized top-level payload structure
type ShapeKind string

const (
	ShapeUnknown       ShapeKind = "unknown"        // Scalar or null payload
	ShapeProfileList   ShapeKind = "profile_list"   // [{..., latestPosts: [...], latestIgtvVideos: [...]}]
	ShapePostList      ShapeKind = "post_list"      // [{post}, {post}]
	ShapeProfileObject ShapeKind = "profile_object" // {..., posts: [...]} or {..., items: [...]}
	ShapeSinglePost    ShapeKind = "single_post"    // {post}
)

// Shape is the result of classifying a raw payload
type Shape struct {
	Kind  ShapeKind
	Root  Object   // Profile-level object, nil when the payload has none
	Posts []Object // Raw post items in payload order, never nil
}

// DetectShape classifies a decoded JSON payload and extracts its root profile and raw posts.
// It never fails: unrecognized payloads yield ShapeUnknown with no root and no posts.
func DetectShape(raw any) Shape {
	if list, ok := asList(raw); ok {
		if len(list) > 0 {
			if first, ok := asObject(list[0]); ok && first.Has("latestPosts", "posts") {
				posts, _ := first.Lookup("latestPosts")
				if posts == nil {
					posts, _ = first.Lookup("posts")
				}
				videos, _ := first.Lookup("latestIgtvVideos")

				return Shape{
					Kind:  ShapeProfileList,
					Root:  first,
					Posts: append(objects(posts), objects(videos)...),
				}
			}
		}
		return Shape{Kind: ShapePostList, Posts: objects(list)}
	}

	if obj, ok := asObject(raw); ok {
		if obj.Has("posts", "items") {
			posts, _ := obj.Lookup("posts")
			if posts == nil {
				posts, _ = obj.Lookup("items")
			}
			return Shape{Kind: ShapeProfileObject, Root: obj, Posts: objects(posts)}
		}
		return Shape{Kind: ShapeSinglePost, Posts: []Object{obj}}
	}

	return Shape{Kind: ShapeUnknown, Posts: []Object{}}
}

// FirstPostOwner returns the embedded owner of the first raw post, or the post itself
func (s Shape) FirstPostOwner() Object {
	if len(s.Posts) == 0 {
		return nil
	}
	first := s.Posts[0]
	if v, ok := first.Lookup("owner"); ok {
		if owner, ok := asObject(v); ok {
			return owner
		}
	}
	return first
}
