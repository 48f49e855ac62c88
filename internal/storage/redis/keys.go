package redis

import (
	"fmt"

	"github.com/calebmcg/deadeye/internal/model"
)

// Key prefix for all session-scoring data
const keyPrefix = "deadeye"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// eventsKey returns the Redis key for a session's event ZSET (scored by
// event timestamp)
func eventsKey(id model.SessionID) string {
	return fmt.Sprintf("%s:events:%s", keyPrefix, id)
}

// eventSeqKey returns the Redis key for a session's event sequence counter
func eventSeqKey(id model.SessionID) string {
	return fmt.Sprintf("%s:events:%s:seq", keyPrefix, id)
}

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// modeIndexKey returns the Redis key for the per-mode ZSET of finished
// sessions (scored by session score)
func modeIndexKey(mode model.Mode) string {
	return fmt.Sprintf("%s:idx:top:%s", keyPrefix, mode)
}
