package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCallbackData(t *testing.T) {
	stage, lang, ok := parseCallbackData("src:fr")
	require.True(t, ok)
	require.Equal(t, callbackSource, stage)
	require.Equal(t, "fr", lang.String())

	stage, lang, ok = parseCallbackData("dst:ar")
	require.True(t, ok)
	require.Equal(t, callbackTarget, stage)
	require.Equal(t, "ar", lang.String())

	for _, bad := range []string{"fr", "src:", "src:EN", "dst:de", "x:en"} {
		_, _, ok := parseCallbackData(bad)
		require.False(t, ok, bad)
	}
}

func TestDetectCaptionLanguage_ShortCaption(t *testing.T) {
	require.Empty(t, detectCaptionLanguage("hola"))
	require.Empty(t, detectCaptionLanguage(""))
}

func TestLanguageMenu_PreferredFirst(t *testing.T) {
	menu := languageMenu(callbackTarget, "es")
	require.Len(t, menu, 4)
	require.Equal(t, "dst:es", menu[0][0].Data)
	require.Equal(t, "dst:en", menu[1][0].Data)
	require.Equal(t, "dst:ar", menu[3][0].Data)

	plain := languageMenu(callbackSource, "")
	require.Equal(t, "src:en", plain[0][0].Data)
	require.Equal(t, "English (EN)", plain[0][0].Label)
}
