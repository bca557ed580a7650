package cache

import (
	"fmt"
	"time"
)

const (
	UserTTL     = 5 * time.Minute
	ProfileTTL  = 10 * time.Minute
	PostTTL     = 30 * time.Minute
	ListTTL     = time.Minute
)

// ProfilesListKey is the cache key for the public list of all profiles.
const ProfilesListKey = "profiles:all"

func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}
