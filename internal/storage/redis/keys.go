package redis

import (
	"fmt"

	"github.com/hyunw/bboard/internal/model"
)

// Key prefix for all board data
const keyPrefix = "bboard"

// accountKey returns the Redis key for an Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> account_id index.
// Claiming this key with SETNX is the uniqueness constraint for usernames.
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// ipIndexKey returns the Redis key for the registration IP -> account_id index
func ipIndexKey(ip string) string {
	return fmt.Sprintf("%s:idx:ip:%s", keyPrefix, ip)
}

// postKey returns the Redis key for a Post
func postKey(id model.PostID) string {
	return fmt.Sprintf("%s:post:%s", keyPrefix, id)
}

// postsByTimeKey returns the Redis key for the ZSET of posts scored by creation time
func postsByTimeKey() string {
	return fmt.Sprintf("%s:idx:posts_by_time", keyPrefix)
}

// commentsKey returns the Redis key for the LIST of a post's comments
func commentsKey(postID model.PostID) string {
	return fmt.Sprintf("%s:comments:%s", keyPrefix, postID)
}
