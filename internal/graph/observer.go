package graph

// Observer receives connection notifications for a node. Hooks run
// synchronously inside Connect and Disconnect and must not call back into
// them.
type Observer interface {
	OutputConnected(out *Output, in *Input)
	InputConnected(in *Input, out *Output)
	OutputDisconnected(out *Output, in *Input)
	InputDisconnected(in *Input, out *Output)
}

// ObserverFuncs implements Observer with optional callbacks.
type ObserverFuncs struct {
	OnOutputConnected    func(out *Output, in *Input)
	OnInputConnected     func(in *Input, out *Output)
	OnOutputDisconnected func(out *Output, in *Input)
	OnInputDisconnected  func(in *Input, out *Output)
}

func (f ObserverFuncs) OutputConnected(out *Output, in *Input) {
	if f.OnOutputConnected != nil {
		f.OnOutputConnected(out, in)
	}
}

func (f ObserverFuncs) InputConnected(in *Input, out *Output) {
	if f.OnInputConnected != nil {
		f.OnInputConnected(in, out)
	}
}

func (f ObserverFuncs) OutputDisconnected(out *Output, in *Input) {
	if f.OnOutputDisconnected != nil {
		f.OnOutputDisconnected(out, in)
	}
}

func (f ObserverFuncs) InputDisconnected(in *Input, out *Output) {
	if f.OnInputDisconnected != nil {
		f.OnInputDisconnected(in, out)
	}
}
