package service

import "context"

//go:generate mockgen -source=ports.go -destination=mock/ports.go -package=mock

// MenuButton is one inline keyboard option.
type MenuButton struct {
	Label string
	Data  string
}

// Menu is a keyboard laid out as rows of buttons.
type Menu [][]MenuButton

// Messenger sends replies back to the chat platform.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	// SendMenu returns the id of the message carrying the keyboard.
	SendMenu(ctx context.Context, chatID int64, text string, menu Menu) (int64, error)
	EditText(ctx context.Context, chatID, messageID int64, text string) error
	EditMenu(ctx context.Context, chatID, messageID int64, text string, menu Menu) error
	AnswerCallback(ctx context.Context, queryID, text string) error
}

// FileFetcher resolves an opaque attachment reference to a local file.
// The caller removes the returned file.
type FileFetcher interface {
	Fetch(ctx context.Context, fileID, fileName string) (string, error)
}
