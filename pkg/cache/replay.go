package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/onnwee/cachetrace/pkg/store"
)

// Replay writes the recorded call history for op to w: a header with the
// total call count, then one line per call pairing the i-th input with the
// i-th output. The count comes from the dedicated counter key; when the
// history sequences are shorter than the counter (older recordings tracked
// them independently), only the pairs that exist are printed. An operation
// that was never called renders a zero-count header and nothing else.
func Replay(ctx context.Context, st store.Store, op string, w io.Writer) error {
	count, err := readCounter(ctx, st, op)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s was called %d times:\n", op, count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	inputs, err := st.ListRange(ctx, op+":inputs", 0, -1)
	if err != nil {
		return err
	}
	outputs, err := st.ListRange(ctx, op+":outputs", 0, -1)
	if err != nil {
		return err
	}

	n := len(inputs)
	if len(outputs) < n {
		n = len(outputs)
	}
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, "%s(*%s) -> %s\n", op, inputs[i], outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Replay writes this cache's own call history to w.
func (c *Cache) Replay(ctx context.Context, w io.Writer) error {
	return Replay(ctx, c.store, c.op, w)
}

func readCounter(ctx context.Context, st store.Store, op string) (int64, error) {
	data, err := st.Get(ctx, op)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cache: counter for %s is not an integer: %w", op, err)
	}
	return count, nil
}
