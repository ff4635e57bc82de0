package models

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system" msg:"Message role must be user, assistant or system"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Model        string        `json:"model"`
	Messages     []ChatMessage `json:"messages" binding:"required,min=1,dive" msg:"Messages are required"`
	ImageDataURL string        `json:"imageDataUrl"`
}

// ChatReply is always returned, even when the provider is unavailable.
type ChatReply struct {
	Reply string `json:"reply"`
}
