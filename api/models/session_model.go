package models

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/fogify-ai/fogify-go/session"
	"github.com/fogify-ai/fogify-go/tool"
)

// SessionTTL bounds how long an untouched session survives. Touching a
// session through the API refreshes it.
var SessionTTL = 60 * time.Minute

// The delete hook fires on explicit Delete and on TTL eviction, so an
// abandoned session always gets its channel and preview token torn down.
var sessions = newSessionCache(SessionTTL)

func newSessionCache(ttl time.Duration) *ttlworker.Cache[string, *session.Session] {
	return ttlworker.NewCacheOn(ttl, [4]func(string, *session.Session){
		nil, nil,
		func(id string, sess *session.Session) {
			tool.DefaultLogger.Debugf("Session %s removed from registry, closing", id)
			sess.Close()
		},
		nil,
	})
}

// SetSession stores a session in the registry.
func SetSession(id string, sess *session.Session) {
	sessions.Set(id, sess)
}

// GetSession looks up a live session. Get refreshes the TTL.
func GetSession(id string) (*session.Session, bool) {
	sess := sessions.Get(id)
	if sess == nil {
		return nil, false
	}
	return sess, true
}

// DeleteSession drops a session from the registry; the delete hook closes it.
func DeleteSession(id string) {
	sessions.Delete(id)
}

// ListSessionIDs returns the IDs of all live sessions.
func ListSessionIDs() []string {
	ids := make([]string, 0)
	err := sessions.Range(func(id string, _ *session.Session) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil
	}
	return ids
}
