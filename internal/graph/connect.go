package graph

import (
	"context"
	"slices"

	"github.com/vk/kiwigraph/internal/ctxlog"
)

// Connect links out to in. It fails without mutating either port when the
// value types differ or when in already has a source. On success both owning
// nodes' observers are notified.
func Connect(ctx context.Context, out *Output, in *Input) error {
	logger := ctxlog.FromContext(ctx)

	switch {
	case out.node.destroyed || in.node.destroyed:
		return &ConnectError{Output: out, Input: in, Err: ErrNodeDestroyed}
	case out.Type() != in.Type():
		logger.Debug("Rejected connection of incompatible ports.", "output", out.String(), "input", in.String())
		return &ConnectError{Output: out, Input: in, Err: ErrIncompatibleType}
	case in.source != nil:
		logger.Debug("Rejected connection to an already connected input.", "input", in.String(), "source", in.source.String())
		return &ConnectError{Output: out, Input: in, Err: ErrAlreadyConnected}
	}

	out.targets = append(out.targets, in)
	in.source = out

	if o := out.node.observer; o != nil {
		o.OutputConnected(out, in)
	}
	if o := in.node.observer; o != nil {
		o.InputConnected(in, out)
	}
	logger.Debug("Ports connected.", "output", out.String(), "input", in.String())
	return nil
}

// To connects out to in; it is shorthand for Connect.
func (out *Output) To(ctx context.Context, in *Input) error {
	return Connect(ctx, out, in)
}

// Disconnect removes the link between out and in. It is a no-op, returning
// false, when the two are not connected.
func Disconnect(ctx context.Context, out *Output, in *Input) bool {
	if in.source != out {
		return false
	}
	idx := slices.Index(out.targets, in)
	if idx < 0 {
		return false
	}
	out.targets = slices.Delete(out.targets, idx, idx+1)
	in.source = nil

	if o := out.node.observer; o != nil {
		o.OutputDisconnected(out, in)
	}
	if o := in.node.observer; o != nil {
		o.InputDisconnected(in, out)
	}
	ctxlog.FromContext(ctx).Debug("Ports disconnected.", "output", out.String(), "input", in.String())
	return true
}
