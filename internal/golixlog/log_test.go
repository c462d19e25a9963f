package golixlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopDiscardsWithoutPanicking(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() {
		l.IdentityEvent("e", "guid", 1)
		l.ObjectEvent("e", "kind", "guid")
		l.RequestEvent("e", "corr", "recipient")
		l.SecurityFailure("code", "guid")
	})

	l = Noop()
	require.NotPanics(t, func() {
		l.IdentityEvent("e", "guid", 1)
	})
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	l, err := New("not-a-level")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNewAcceptsKnownLevel(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.NotNil(t, l)
}
