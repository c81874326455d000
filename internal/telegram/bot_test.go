package telegram

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"translatix/backend/internal/service"
)

func TestBot_SendMenuReturnsMessageID(t *testing.T) {
	api := newFakeAPI(t)
	api.results["sendMessage"] = sentMessage(501, 42)
	bot := NewBot(api.client(), t.TempDir(), 0)

	menu := service.Menu{
		{{Label: "English (EN)", Data: "src:en"}},
		{{Label: "French (FR)", Data: "src:fr"}},
	}
	id, err := bot.SendMenu(context.Background(), 42, "Please choose the original language:", menu)
	require.NoError(t, err)
	require.Equal(t, int64(501), id)

	rows := inlineKeyboard(t, api.callsTo("sendMessage")[0].Form)
	require.Len(t, rows, 2)
	require.Equal(t, "French (FR)", rows[1][0]["text"])
	require.Equal(t, "src:fr", rows[1][0]["callback_data"])
}

func TestBot_EditTextRemovesKeyboard(t *testing.T) {
	api := newFakeAPI(t)
	bot := NewBot(api.client(), t.TempDir(), 0)

	require.NoError(t, bot.EditText(context.Background(), 42, 501, "queued"))
	form := api.callsTo("editMessageText")[0].Form
	require.Equal(t, "501", form["message_id"])
	_, hasMarkup := form["reply_markup"]
	require.False(t, hasMarkup)

	// Without a known prompt message the text is sent as a new message.
	require.NoError(t, bot.EditText(context.Background(), 42, 0, "queued"))
	require.Len(t, api.callsTo("sendMessage"), 1)
}

func TestBot_AnswerCallback(t *testing.T) {
	api := newFakeAPI(t)
	bot := NewBot(api.client(), t.TempDir(), 0)

	require.NoError(t, bot.AnswerCallback(context.Background(), "q1", service.ExpiredText))
	require.NoError(t, bot.AnswerCallback(context.Background(), "", "ignored"))

	calls := api.callsTo("answerCallbackQuery")
	require.Len(t, calls, 1)
	require.Equal(t, "q1", calls[0].Form["callback_query_id"])
	require.Equal(t, service.ExpiredText, calls[0].Form["text"])
}

func TestBot_Fetch(t *testing.T) {
	api := newFakeAPI(t)
	api.results["getFile"] = map[string]any{"file_id": "F1", "file_unique_id": "u9", "file_path": "documents/file_9.docx"}
	api.files["documents/file_9.docx"] = "docx-content"
	dir := filepath.Join(t.TempDir(), "scratch")
	bot := NewBot(api.client(), dir, 0)

	path, err := bot.Fetch(context.Background(), "F1", "Report.DOCX")
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	require.Equal(t, ".docx", filepath.Ext(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "docx-content", string(got))
	require.Equal(t, "F1", api.callsTo("getFile")[0].Form["file_id"])
}

func TestBot_FetchDownloadFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.results["getFile"] = map[string]any{"file_id": "F1", "file_unique_id": "u9", "file_path": "documents/gone.docx"}
	dir := t.TempDir()
	bot := NewBot(api.client(), dir, 0)

	_, err := bot.Fetch(context.Background(), "F1", "gone.docx")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBot_EditMenuKeepsKeyboard(t *testing.T) {
	api := newFakeAPI(t)
	api.results["sendMessage"] = sentMessage(502, 42)
	bot := NewBot(api.client(), t.TempDir(), 0)
	menu := service.Menu{{{Label: "German (DE)", Data: "dst:de"}}}

	require.NoError(t, bot.EditMenu(context.Background(), 42, 501, "Please choose the target language:", menu))
	rows := inlineKeyboard(t, api.callsTo("editMessageText")[0].Form)
	require.Equal(t, "dst:de", rows[0][0]["callback_data"])

	require.NoError(t, bot.EditMenu(context.Background(), 42, 0, "Please choose the target language:", menu))
	require.Len(t, api.callsTo("sendMessage"), 1)
}
