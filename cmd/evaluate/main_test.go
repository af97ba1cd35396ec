package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedChatService struct {
	answers  map[string]string
	failOn   string
	sessions []string
}

func (c *cannedChatService) Respond(ctx context.Context, sessionID, message string, emit func(token string) error) (string, error) {
	c.sessions = append(c.sessions, sessionID)
	if message == c.failOn {
		return "", errors.New("generation stream ended without a final record")
	}
	return c.answers[message], nil
}

func (c *cannedChatService) Greeting() string { return "" }

func TestRunQuestions(t *testing.T) {
	chat := &cannedChatService{
		answers: map[string]string{
			"Was ist die Hauptstadt von Frankreich?": "Paris.",
			"Wie viele Einwohner hat Berlin?":        "Etwa 3,7 Millionen.",
		},
		failOn: "Kaputte Frage",
	}

	results := runQuestions(context.Background(), chat, []string{
		"Was ist die Hauptstadt von Frankreich?",
		"Kaputte Frage",
		"Wie viele Einwohner hat Berlin?",
	})
	require.Len(t, results, 3)

	assert.Equal(t, "Paris.", results[0].Answer)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, "Etwa 3,7 Millionen.", results[2].Answer)

	// Every question runs in its own session.
	require.Len(t, chat.sessions, 3)
	assert.NotEqual(t, chat.sessions[0], chat.sessions[1])
	assert.NotEqual(t, chat.sessions[1], chat.sessions[2])
	for i, r := range results {
		assert.Equal(t, chat.sessions[i], r.SessionId)
	}
}

func TestReadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	content := "# Landeskunde\nWas ist die Hauptstadt von Frankreich?\n\n  Wie viele Einwohner hat Berlin?  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	questions, err := readQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Was ist die Hauptstadt von Frankreich?",
		"Wie viele Einwohner hat Berlin?",
	}, questions)

	_, err = readQuestions(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
