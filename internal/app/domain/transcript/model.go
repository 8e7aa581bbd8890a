package transcript

import "time"

// Message is a single turn in a chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is a saved AI chat conversation.
type Transcript struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
