package object

import "context"

// Stream is a lazy, pull-based sequence of values flowing between pipeline
// stages. Producers close the channel when exhausted; consumers stop pulling
// on cancellation and must not assume the producer drained.
type Stream <-chan Object

// EmptyStream returns an already-closed stream.
func EmptyStream() Stream {
	ch := make(chan Object)
	close(ch)
	return ch
}

// StreamOf returns a stream over the given values.
func StreamOf(values ...Object) Stream {
	ch := make(chan Object, len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

// One returns a stream holding a single value.
func One(v Object) Stream {
	return StreamOf(v)
}

// Collect drains the stream into a slice, stopping early on cancellation.
// Remaining values are dropped, not drained to completion.
func Collect(ctx context.Context, s Stream) []Object {
	var out []Object
	for {
		select {
		case <-ctx.Done():
			return out
		case v, ok := <-s:
			if !ok {
				return out
			}
			out = append(out, v)
		}
	}
}

// Forward copies values from src to dst until src closes or ctx is
// cancelled. It does not close dst.
func Forward(ctx context.Context, dst chan<- Object, src Stream) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src:
			if !ok {
				return
			}
			select {
			case dst <- v:
			case <-ctx.Done():
				return
			}
		}
	}
}
