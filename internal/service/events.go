package service

// Command is a slash command such as /start, without the leading slash or bot mention.
type Command struct {
	ChatID int64
	Name   string
	Args   string
}

// DocumentEvent is an attachment sent to the bot.
type DocumentEvent struct {
	ChatID    int64
	MessageID int64
	FileID    string
	FileName  string
	MimeType  string
	Caption   string
}

// CallbackEvent is a press on an inline keyboard button.
type CallbackEvent struct {
	ChatID    int64
	MessageID int64
	QueryID   string
	Data      string
}
