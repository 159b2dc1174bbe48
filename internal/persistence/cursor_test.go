package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/activitytracker/internal/domain"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := &domain.Cursor{
		RecordedAt: time.Date(2026, time.March, 14, 9, 30, 0, 123456789, time.UTC),
		ID:         "act-42",
	}

	token := EncodeCursor(cursor)
	require.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	require.Equal(t, cursor, decoded)
}

func TestCursorEmptyToken(t *testing.T) {
	token := EncodeCursor(nil)
	require.Empty(t, token)

	decoded, err := DecodeCursor("")
	require.NoError(t, err)
	require.Nil(t, decoded)
}

func TestCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	require.Error(t, err)

	_, err = DecodeCursor("bm8gcGlwZSBoZXJl") // valid base64, wrong shape
	require.Error(t, err)
}
