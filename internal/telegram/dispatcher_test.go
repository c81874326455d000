package telegram

import (
	"context"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"translatix/backend/internal/service"
	"translatix/backend/internal/service/mock"
)

func TestDispatcher_Document(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	conversations := mock.NewMockConversationService(ctrl)
	d := NewDispatcher(conversations)
	ctx := context.Background()

	conversations.EXPECT().HandleDocument(ctx, service.DocumentEvent{
		ChatID:    42,
		MessageID: 9,
		FileID:    "F1",
		FileName:  "a.docx",
		MimeType:  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Caption:   "hello",
	}).Return(nil)

	err := d.Dispatch(ctx, &models.Update{ID: 1, Message: &models.Message{
		ID:      9,
		Chat:    models.Chat{ID: 42},
		Caption: "hello",
		Document: &models.Document{
			FileID:   "F1",
			FileName: "a.docx",
			MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
	}})
	require.NoError(t, err)
}

func TestDispatcher_Callback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	conversations := mock.NewMockConversationService(ctrl)
	d := NewDispatcher(conversations)
	ctx := context.Background()

	conversations.EXPECT().HandleCallback(ctx, service.CallbackEvent{ChatID: 42, MessageID: 100, QueryID: "q", Data: "src:fr"}).Return(nil)
	require.NoError(t, d.Dispatch(ctx, &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:      "q",
		Data:    "src:fr",
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{ID: 100, Chat: models.Chat{ID: 42}}},
	}}))

	// Messages too old to be accessible still carry their chat and id.
	conversations.EXPECT().HandleCallback(ctx, service.CallbackEvent{ChatID: 42, MessageID: 90, QueryID: "p", Data: "dst:de"}).Return(nil)
	require.NoError(t, d.Dispatch(ctx, &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:      "p",
		Data:    "dst:de",
		Message: models.MaybeInaccessibleMessage{InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 42}, MessageID: 90}},
	}}))

	// Without any message the sender's private chat is used.
	conversations.EXPECT().HandleCallback(ctx, service.CallbackEvent{ChatID: 7, QueryID: "r", Data: "dst:en"}).Return(nil)
	require.NoError(t, d.Dispatch(ctx, &models.Update{CallbackQuery: &models.CallbackQuery{ID: "r", Data: "dst:en", From: models.User{ID: 7}}}))
}

func TestDispatcher_Commands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	conversations := mock.NewMockConversationService(ctrl)
	d := NewDispatcher(conversations)
	ctx := context.Background()

	conversations.EXPECT().HandleCommand(ctx, service.Command{ChatID: 42, Name: "start"}).Return(nil)
	conversations.EXPECT().HandleCommand(ctx, service.Command{ChatID: 42, Name: "jobs", Args: "all"}).Return(nil)

	require.NoError(t, d.Dispatch(ctx, &models.Update{Message: &models.Message{Chat: models.Chat{ID: 42}, Text: "/start"}}))
	require.NoError(t, d.Dispatch(ctx, &models.Update{Message: &models.Message{Chat: models.Chat{ID: 42}, Text: "/Jobs@translatix_bot all"}}))
	require.NoError(t, d.Dispatch(ctx, &models.Update{Message: &models.Message{Chat: models.Chat{ID: 42}, Text: "hello there"}}))
	require.NoError(t, d.Dispatch(ctx, &models.Update{ID: 5}))
	require.NoError(t, d.Dispatch(ctx, nil))
}

func TestParseCommand(t *testing.T) {
	name, args, ok := parseCommand("  /help  ")
	require.True(t, ok)
	require.Equal(t, "help", name)
	require.Empty(t, args)

	_, _, ok = parseCommand("/")
	require.False(t, ok)
	_, _, ok = parseCommand("start")
	require.False(t, ok)
}
