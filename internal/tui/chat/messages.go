package chat

// ChatReplyMsg carries the assistant's reply to the message with ID.
type ChatReplyMsg struct {
	ID    string
	Reply string
	Err   error
}
