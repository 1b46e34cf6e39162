package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_Interpolation(t *testing.T) {
	tr := NewTranslator(LangEN)
	got := tr.T(KeyConfirmSubmit, map[string]string{"id": "123", "duration": "2.00"})
	assert.Equal(t, "Send a work report for changeset 123 covering 2.00 minutes?", got)
}

func TestTranslator_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	tr := NewTranslator("de")
	assert.Equal(t, LangEN, tr.Lang())
	assert.Equal(t, "Start", tr.T(KeyStart, nil))
}

func TestTranslator_UnknownKeyResolvesToKey(t *testing.T) {
	tr := NewTranslator(LangEN)
	assert.Equal(t, "no_such_key", tr.T("no_such_key", nil))
}

func TestTranslator_AllLanguagesCoverAllKeys(t *testing.T) {
	keys := []string{
		KeyStart, KeyPause, KeyStop, KeySessionStopped,
		KeyMissingCredentials, KeyInvalidCredentials, KeyTimerNotActive,
		KeyDurationShort, KeyCommentError, KeyShareholderError,
		KeyConfirmSubmit, KeyReportSuccess, KeyReportIDMissing,
		KeyReportCancelled, KeyReportError,
	}
	for lang, catalog := range catalogs {
		for _, key := range keys {
			assert.Contains(t, catalog, key, "lang %s missing %s", lang, key)
		}
	}
}
