package entity

// DefaultProfilePicURL is shown when the payload carries no usable avatar
const DefaultProfilePicURL = "https://upload.wikimedia.org/wikipedia/commons/a/ac/Default_pfp.jpg"

// DefaultBiography is used when the payload carries no biography
const DefaultBiography = "Instagram Creator"

// Profile represents a normalized Instagram profile
type Profile struct {
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	Biography       string `json:"biography"`
	ProfilePicURL   string `json:"profilePicUrl"`             // Never empty, falls back to DefaultProfilePicURL
	ProfilePicURLHD string `json:"profilePicUrlHD,omitempty"` // Empty when neither avatar was found
	FollowersCount  int64  `json:"followersCount"`
	FollowsCount    int64  `json:"followsCount"`
	MediaCount      int64  `json:"mediaCount"`
	IsVerified      bool   `json:"isVerified"`
}
