package model

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation. Messages live only in
// request/response payloads; nothing is persisted server-side.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the full running conversation. The client resends the
// complete history on every call; the server holds no chat state.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1"`
}
