package models

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser   ChatRole = "user"
	RoleModel  ChatRole = "model"
	RoleSystem ChatRole = "system"
)

// ChatMessage is one turn in an event conversation. Conversations are
// append-only and scoped to a single event.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
