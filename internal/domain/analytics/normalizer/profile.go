package normalizer

import (
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

var (
	usernameChain  = fields(asText, "username", "ownerUsername")
	fullNameChain  = fields(asText, "fullName", "full_name", "ownerFullName")
	biographyChain = fields(asText, "biography", "bio")

	followersChain  = fields(asCount, "followersCount", "followers", "followerCount", "edge_followed_by.count")
	followsChain    = fields(asCount, "followingCount", "followsCount", "following", "edge_follow.count")
	mediaCountChain = fields(asCount, "postsCount", "mediaCount", "media_count", "edge_owner_to_timeline_media.count")

	picHDChain     = fields(asURL, "profilePicUrlHD", "hd_profile_pic_url", "profile_pic_url_hd")
	picHDInfoChain = fields(asURL, "hd_profile_pic_url_info")
	picChain       = fields(asURL, "profilePicUrl", "profile_pic_url", "ownerProfilePicUrl")

	verifiedChain = fields(asFlag, "isVerified", "is_verified", "verified")
)

// ResolveProfile builds the canonical profile. Every field is looked up in root first,
// then in owner. username is the name the caller asked for and backs username and
// fullName; postCount backs mediaCount.
func ResolveProfile(root, owner Object, username string, postCount int) entity.Profile {
	sources := []Object{root, owner}

	picHD, ok := picHDChain.resolve(sources...)
	if !ok {
		picHD = picHDInfoChain.or("", sources...)
	}
	pic := picChain.or("", sources...)

	if pic == "" {
		pic = picHD
	}
	if picHD == "" {
		picHD = pic
	}
	if pic == "" {
		pic = entity.DefaultProfilePicURL
	}

	return entity.Profile{
		Username:        usernameChain.or(username, sources...),
		FullName:        fullNameChain.or(username, sources...),
		Biography:       biographyChain.or(entity.DefaultBiography, sources...),
		ProfilePicURL:   pic,
		ProfilePicURLHD: picHD,
		FollowersCount:  followersChain.or(0, sources...),
		FollowsCount:    followsChain.or(0, sources...),
		MediaCount:      mediaCountChain.or(int64(postCount), sources...),
		IsVerified:      verifiedChain.or(false, sources...),
	}
}
