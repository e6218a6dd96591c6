// Package script checks and dry-runs bot scripts locally.
//
// Hosted bots are written in a Python-flavoured language and must define
// handle_message(text, message). Scripts are evaluated here with Starlark,
// a Python dialect, so the results are advisory: the hosting runtime has
// the final word.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	HandlerName = "handle_message"
	fileName    = "bot.py"
	// maxSteps bounds a single Check or Run.
	maxSteps = 1_000_000
)

var (
	ErrNoHandler    = errors.New("script does not define handle_message")
	ErrBadSignature = errors.New("handle_message must take exactly two parameters (text, message)")
)

// Result is the outcome of a dry run.
type Result struct {
	// Reply is the handler's return value; empty when it returned None.
	Reply    string
	HasReply bool
	// Output collects everything the script printed.
	Output string
	Steps  uint64
}

var fileOptions = &syntax.FileOptions{
	TopLevelControl: true,
	While:           true,
	Set:             true,
	GlobalReassign:  true,
	Recursion:       true,
}

func newThread(out *bytes.Buffer) *starlark.Thread {
	th := &starlark.Thread{
		Name: "bot",
		Print: func(_ *starlark.Thread, msg string) {
			out.WriteString(msg)
			out.WriteByte('\n')
		},
	}
	th.SetMaxExecutionSteps(maxSteps)
	return th
}

func load(th *starlark.Thread, src string) (*starlark.Function, error) {
	globals, err := starlark.ExecFileOptions(fileOptions, th, fileName, src, nil)
	if err != nil {
		return nil, err
	}

	v, ok := globals[HandlerName]
	if !ok {
		return nil, ErrNoHandler
	}
	fn, ok := v.(*starlark.Function)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNoHandler, HandlerName, v.Type())
	}
	if !acceptsTwoArgs(fn) {
		return nil, ErrBadSignature
	}
	return fn, nil
}

func acceptsTwoArgs(fn *starlark.Function) bool {
	positional := fn.NumParams() - fn.NumKwonlyParams()
	if fn.HasVarargs() {
		positional--
	}
	if fn.HasKwargs() {
		positional--
	}

	required := 0
	for i := 0; i < positional; i++ {
		if fn.ParamDefault(i) == nil {
			required++
		}
	}
	return required <= 2 && (positional >= 2 || fn.HasVarargs())
}

// Check evaluates the top level of src and verifies the handler.
func Check(src string) error {
	var out bytes.Buffer
	_, err := load(newThread(&out), src)
	return err
}

// Run calls handle_message(text, message) with a synthetic message.
func Run(ctx context.Context, src, text string) (Result, error) {
	var out bytes.Buffer
	th := newThread(&out)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			th.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	fn, err := load(th, src)
	if err != nil {
		return Result{Output: out.String()}, err
	}

	msg, err := syntheticMessage(text)
	if err != nil {
		return Result{}, err
	}

	v, err := starlark.Call(th, fn, starlark.Tuple{starlark.String(text), msg}, nil)
	res := Result{Output: out.String(), Steps: th.ExecutionSteps()}
	if err != nil {
		if ctx.Err() != nil {
			return res, fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return res, err
	}

	switch r := v.(type) {
	case starlark.NoneType:
	case starlark.String:
		res.Reply, res.HasReply = string(r), true
	default:
		res.Reply, res.HasReply = r.String(), true
	}
	return res, nil
}

// syntheticMessage mirrors the subset of a Telegram update the runtime
// passes to handlers.
func syntheticMessage(text string) (*starlark.Dict, error) {
	chat := starlark.NewDict(1)
	from := starlark.NewDict(2)
	msg := starlark.NewDict(3)

	for _, kv := range []struct {
		d *starlark.Dict
		k string
		v starlark.Value
	}{
		{chat, "id", starlark.MakeInt(0)},
		{from, "id", starlark.MakeInt(0)},
		{from, "is_bot", starlark.False},
		{msg, "text", starlark.String(text)},
		{msg, "chat", chat},
		{msg, "from", from},
	} {
		if err := kv.d.SetKey(starlark.String(kv.k), kv.v); err != nil {
			return nil, err
		}
	}
	return msg, nil
}
