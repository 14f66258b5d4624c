package redis

import "fmt"

// Key prefix for all conversation state
const keyPrefix = "rallybot"

// editStateKey returns the Redis key for a game edit conversation
func editStateKey(conversationID string) string {
	return fmt.Sprintf("%s:edit:%s", keyPrefix, conversationID)
}

// draftStateKey returns the Redis key for a game creation conversation
func draftStateKey(conversationID string) string {
	return fmt.Sprintf("%s:draft:%s", keyPrefix, conversationID)
}
