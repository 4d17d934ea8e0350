package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perchtree/perch/internal/pubsub"
)

func TestRegistry_LookupOnlySeesVisiblePanels(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	_, ok := r.Lookup("files")
	require.False(t, ok)

	root := NewBox("root")
	r.Register("files", root)
	p, ok := r.Lookup("files")
	require.True(t, ok)
	require.Equal(t, Component(root), p.Root)
	require.True(t, p.Visible())

	r.Hide("files")
	_, ok = r.Lookup("files")
	require.False(t, ok)

	r.Show("files")
	_, ok = r.Lookup("files")
	require.True(t, ok)
}

func TestRegistry_PublishesLifecycleEvents(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := r.Events().Subscribe(ctx)

	r.Register("files", NewBox("root"))
	r.Hide("files")
	r.Show("files")
	r.Hide("missing") // unknown panel publishes nothing

	want := []pubsub.EventType{pubsub.RegisteredEvent, pubsub.HiddenEvent, pubsub.ShownEvent}
	for _, typ := range want {
		select {
		case ev := <-ch:
			require.Equal(t, typ, ev.Type)
			require.Equal(t, "files", ev.Payload.Name)
		case <-time.After(time.Second):
			t.Fatalf("missing %s event", typ)
		}
	}
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistry_RegisterReplacesExistingPanel(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	r.Register("files", NewBox("old"))
	r.Hide("files")
	next := NewBox("new")
	r.Register("files", next)

	p, ok := r.Lookup("files")
	require.True(t, ok)
	require.Equal(t, Component(next), p.Root)
}
