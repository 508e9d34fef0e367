package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/onnwee/cachetrace/internal/metrics"
	"github.com/onnwee/cachetrace/pkg/store"
)

// recorder applies the call-count and call-history bookkeeping around an
// instrumented operation. The counter increment and the input append happen
// before the body runs, the output append after it succeeds, so the i-th
// input always corresponds to the i-th output.
type recorder struct {
	store store.Store
	op    string
}

func (r recorder) call(ctx context.Context, argsRepr string, body func(ctx context.Context) (string, error)) (string, error) {
	if _, err := r.store.Incr(ctx, r.op); err != nil {
		return "", err
	}
	metrics.InstrumentedCalls.WithLabelValues(r.op).Inc()

	if err := r.store.PushList(ctx, r.op+":inputs", argsRepr); err != nil {
		return "", err
	}
	out, err := body(ctx)
	if err != nil {
		return "", err
	}
	if err := r.store.PushList(ctx, r.op+":outputs", out); err != nil {
		return "", err
	}
	return out, nil
}

// formatArgs renders a call's single argument in the tuple form used by
// earlier recordings, so mixed histories stay readable: ('foo',), (b'foo',),
// (42,), (3.14,).
func formatArgs(value any) string {
	switch v := value.(type) {
	case string:
		return "('" + escapeQuotes(v) + "',)"
	case []byte:
		return "(b'" + escapeQuotes(string(v)) + "',)"
	case int:
		return "(" + strconv.Itoa(v) + ",)"
	case int64:
		return "(" + strconv.FormatInt(v, 10) + ",)"
	case float64:
		return "(" + strconv.FormatFloat(v, 'g', -1, 64) + ",)"
	default:
		return fmt.Sprintf("(%v,)", v)
	}
}

func escapeQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
