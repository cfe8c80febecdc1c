package harvest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tempLog(t *testing.T) *EventLog {
	t.Helper()
	return NewEventLog(filepath.Join(t.TempDir(), "harvest.jsonl"))
}

func TestEventLog_MissingFileIsEmpty(t *testing.T) {
	events, err := tempLog(t).ReadAll()
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestEventLog_AppendAndReadAll(t *testing.T) {
	l := tempLog(t)
	xyz := NewInvestment("XYZ")
	d := NewDate(2022, time.May, 20)

	require.NoError(t, l.Append(NewSetBalance("a", xyz, d, Q(10))))
	require.NoError(t, l.Append(NewSetPrice(xyz, d, MustParseMoney("34.56"))))

	events, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, EvtSetBalance, events[0].What())
	require.Equal(t, EvtSetPrice, events[1].What())
}

func TestEventLog_RewritePreservesUnknownLines(t *testing.T) {
	l := tempLog(t)
	raw := `{"type":"SomeFutureEvent","payload":42}`
	require.NoError(t, os.WriteFile(l.Path, []byte(raw+"\n"), 0644))
	require.NoError(t, l.Append(NewSetPrice(NewInvestment("XYZ"), NewDate(2022, time.May, 20), MustParseMoney("1"))))

	events, err := l.ReadAll()
	require.NoError(t, err)
	require.NoError(t, l.Rewrite(events))

	again, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, again, 2)
	u, ok := again[0].(UnknownEvent)
	require.True(t, ok, "first line should still be unknown")
	require.Equal(t, raw, u.Raw)
}
