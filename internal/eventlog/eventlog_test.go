package eventlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceCapsAt200MostRecent(t *testing.T) {
	l := New()
	for i := 0; i < 250; i++ {
		l.Emit(Event{Year: i, Message: "tick", Type: Settlement})
	}
	surface := l.Surface()
	require.Len(t, surface, 200)
	assert.Equal(t, 50, surface[0].Year)
	assert.Equal(t, 249, surface[len(surface)-1].Year)
}

func TestLatentIsUnbounded(t *testing.T) {
	l := New()
	for i := 0; i < 250; i++ {
		l.Emit(Event{Year: i})
	}
	assert.Equal(t, 250, l.Len())
}

func TestSinceReadsForwardFromCursor(t *testing.T) {
	l := New()
	l.Emit(Event{Year: 1})
	l.Emit(Event{Year: 2})
	l.Emit(Event{Year: 3})

	events, cursor := l.Since(0)
	require.Len(t, events, 3)
	assert.Equal(t, 3, cursor)

	l.Emit(Event{Year: 4})
	events, cursor = l.Since(cursor)
	require.Len(t, events, 1)
	assert.Equal(t, 4, events[0].Year)
	assert.Equal(t, 4, cursor)
}
