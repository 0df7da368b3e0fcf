package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/datatype"
	"github.com/zclconf/go-cty/cty"
)

func TestConnect(t *testing.T) {
	f := newFixture(t)
	src := f.nodeType("Src", nil, []*datatype.TypeDescriptor{f.float, f.text}, nil)
	sink := f.nodeType("Sink", []*datatype.TypeDescriptor{f.float, f.text}, nil, nil)

	t.Run("success case", func(t *testing.T) {
		a, b := NewNode(src), NewNode(sink)
		require.NoError(t, Connect(f.ctx, a.Output(0), b.Input(0)))

		assert.True(t, b.Input(0).IsConnected())
		assert.Same(t, a.Output(0), b.Input(0).Source())
		assert.Equal(t, []*Input{b.Input(0)}, a.Output(0).Targets())
		assert.True(t, a.Output(0).IsConnected())
	})

	t.Run("connected input reads the source value", func(t *testing.T) {
		a, b := NewNode(src), NewNode(sink)
		require.NoError(t, b.Input(0).Local().Set(cty.NumberFloatVal(1)))
		assert.True(t, b.Input(0).Value().RawEquals(cty.NumberFloatVal(1)), "unconnected input reads its local value")

		require.NoError(t, Connect(f.ctx, a.Output(0), b.Input(0)))
		require.NoError(t, a.Output(0).Data().Set(cty.NumberFloatVal(5)))
		assert.True(t, b.Input(0).Value().RawEquals(cty.NumberFloatVal(5)))
	})

	t.Run("incompatible types leave ports untouched", func(t *testing.T) {
		a, b := NewNode(src), NewNode(sink)
		err := Connect(f.ctx, a.Output(0), b.Input(1))

		var connErr *ConnectError
		require.ErrorAs(t, err, &connErr)
		assert.ErrorIs(t, err, ErrIncompatibleType)
		assert.Contains(t, err.Error(), "Float")
		assert.False(t, b.Input(1).IsConnected())
		assert.False(t, a.Output(0).IsConnected())
	})

	t.Run("second source is rejected", func(t *testing.T) {
		a1, a2, b := NewNode(src), NewNode(src), NewNode(sink)
		require.NoError(t, Connect(f.ctx, a1.Output(0), b.Input(0)))

		err := Connect(f.ctx, a2.Output(0), b.Input(0))
		assert.ErrorIs(t, err, ErrAlreadyConnected)
		assert.Same(t, a1.Output(0), b.Input(0).Source())
		assert.False(t, a2.Output(0).IsConnected())

		require.True(t, Disconnect(f.ctx, a1.Output(0), b.Input(0)))
		assert.NoError(t, Connect(f.ctx, a2.Output(0), b.Input(0)))
	})

	t.Run("fan-out", func(t *testing.T) {
		a, b, c := NewNode(src), NewNode(sink), NewNode(sink)
		require.NoError(t, a.Output(0).To(f.ctx, b.Input(0)))
		require.NoError(t, a.Output(0).To(f.ctx, c.Input(0)))
		assert.Equal(t, []*Input{b.Input(0), c.Input(0)}, a.Output(0).Targets())
	})

	t.Run("destroyed node cannot be connected", func(t *testing.T) {
		a, b := NewNode(src), NewNode(sink)
		b.Destroy(f.ctx)
		assert.ErrorIs(t, Connect(f.ctx, a.Output(0), b.Input(0)), ErrNodeDestroyed)
	})
}

func TestDisconnect(t *testing.T) {
	f := newFixture(t)
	src := f.nodeType("Src", nil, []*datatype.TypeDescriptor{f.float}, nil)
	sink := f.nodeType("Sink", []*datatype.TypeDescriptor{f.float}, nil, nil)

	a, b := NewNode(src), NewNode(sink)
	require.NoError(t, Connect(f.ctx, a.Output(0), b.Input(0)))

	assert.True(t, Disconnect(f.ctx, a.Output(0), b.Input(0)))
	assert.False(t, b.Input(0).IsConnected())
	assert.Nil(t, b.Input(0).Source())
	assert.Empty(t, a.Output(0).Targets())

	assert.False(t, Disconnect(f.ctx, a.Output(0), b.Input(0)), "disconnecting twice is a no-op")
}

func TestObserverNotifications(t *testing.T) {
	f := newFixture(t)
	src := f.nodeType("Src", nil, []*datatype.TypeDescriptor{f.float}, nil)
	sink := f.nodeType("Sink", []*datatype.TypeDescriptor{f.float, f.text}, nil, nil)

	a, b := NewNode(src), NewNode(sink)
	a.SetName("a")
	b.SetName("b")
	rec := &recorder{}
	a.SetObserver(rec.observer())
	b.SetObserver(rec.observer())

	require.NoError(t, Connect(f.ctx, a.Output(0), b.Input(0)))
	require.Error(t, Connect(f.ctx, a.Output(0), b.Input(1)))
	Disconnect(f.ctx, a.Output(0), b.Input(0))

	assert.Equal(t, []string{
		"out+ a.out0>b.a",
		"in+ b.a<a.out0",
		"out- a.out0>b.a",
		"in- b.a<a.out0",
	}, rec.events, "failed connections fire no hooks")
}

func TestDisconnectAll(t *testing.T) {
	f := newFixture(t)
	pass := f.nodeType("Pass", []*datatype.TypeDescriptor{f.float}, []*datatype.TypeDescriptor{f.float}, nil)

	a, b, c, d := NewNode(pass), NewNode(pass), NewNode(pass), NewNode(pass)
	require.NoError(t, Connect(f.ctx, a.Output(0), b.Input(0)))
	require.NoError(t, Connect(f.ctx, b.Output(0), c.Input(0)))
	require.NoError(t, Connect(f.ctx, b.Output(0), d.Input(0)))

	b.Destroy(f.ctx)
	assert.True(t, b.Destroyed())
	assert.False(t, a.Output(0).IsConnected())
	assert.False(t, c.Input(0).IsConnected())
	assert.False(t, d.Input(0).IsConnected())
	assert.Empty(t, b.PreviousNodes())
	assert.Empty(t, b.NextNodes())
}

func TestConnectWithBareContext(t *testing.T) {
	f := newFixture(t)
	src := f.nodeType("Src", nil, []*datatype.TypeDescriptor{f.float}, nil)
	sink := f.nodeType("Sink", []*datatype.TypeDescriptor{f.float}, nil, nil)
	a, b := NewNode(src), NewNode(sink)

	ctx := context.Background()
	require.NotPanics(t, func() {
		require.NoError(t, Connect(ctx, a.Output(0), b.Input(0)))
		assert.True(t, Disconnect(ctx, a.Output(0), b.Input(0)))
	})
}
