package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnovotny/examtrainer/internal/session"
)

func TestManager_SameConfigKeepsSession(t *testing.T) {
	m := session.NewManager(nil)
	cfg := session.Config{User: "ana", Language: "en", Set: "A", Mode: session.ModeStandard}

	first := m.Ensure(cfg, testQuestions(2))
	second := m.Ensure(cfg, testQuestions(2))

	assert.Same(t, first, second)
}

func TestManager_ConfigChangeReplacesSession(t *testing.T) {
	m := session.NewManager(nil)
	cfg := session.Config{User: "ana", Language: "en", Set: "A", Mode: session.ModeStandard}

	first := m.Ensure(cfg, testQuestions(2))
	require.NoError(t, first.Start())

	cfg.ShuffleQuestions = true
	second := m.Ensure(cfg, testQuestions(2))

	assert.NotSame(t, first, second)
	assert.False(t, second.Started(), "replacement session starts fresh")

	got, ok := m.Get("ana")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestManager_OneSessionPerUser(t *testing.T) {
	m := session.NewManager(nil)

	ana := m.Ensure(session.Config{User: "ana", Language: "en", Set: "A", Mode: session.ModeStandard}, testQuestions(1))
	bob := m.Ensure(session.Config{User: "bob", Language: "en", Set: "A", Mode: session.ModeStandard}, testQuestions(1))

	assert.NotSame(t, ana, bob)

	m.Drop("ana")
	_, ok := m.Get("ana")
	assert.False(t, ok)
	_, ok = m.Get("bob")
	assert.True(t, ok)
}
