package window

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/rless/internal/remote"
)

// Intent classifies what a fetch is trying to load.
type Intent int

const (
	// IntentFromStart loads the first page of the file.
	IntentFromStart Intent = iota
	// IntentCenter loads a symmetric context window around a pivot line.
	IntentCenter
	// IntentBefore extends the window upward by one page.
	IntentBefore
	// IntentAfter extends the window downward by one page.
	IntentAfter
	// IntentToEnd loads the tail of the file via the last-line sentinel.
	IntentToEnd
)

func (i Intent) String() string {
	switch i {
	case IntentFromStart:
		return "from-start"
	case IntentCenter:
		return "center"
	case IntentBefore:
		return "before"
	case IntentAfter:
		return "after"
	case IntentToEnd:
		return "to-end"
	}
	return "unknown"
}

// Direction selects which edge a directional load extends.
type Direction string

const (
	Before Direction = "before"
	After  Direction = "after"
)

// Fetch describes one sampling request for one file. The Store hands
// these out; the caller executes the request against the service and
// feeds the outcome back through Store.Apply.
type Fetch struct {
	Path string
	// Intent decides how errors and results are interpreted.
	Intent Intent
	// Keys are sample keys: "start-end" ranges, single line numbers,
	// or the "-1" sentinel.
	Keys []string
	// Context is the surrounding-line count for pivot keys, 0 for
	// explicit ranges.
	Context int
	// WantIndex asks the executor to also try the index endpoint and
	// attach the line count to the result. Failures are swallowed.
	WantIndex bool
}

func rangeKey(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}

// normalize converts a raw sample reply into window lines. Each sample
// key contributes lines numbered key_line - before_context + index;
// non-positive numbers are dropped. For a to-end fetch the resolved
// sentinel key is the file's last line, returned as total.
func normalize(fetch *Fetch, res *remote.SampleResult) (lines []Line, total *int) {
	for key, contents := range res.Samples {
		base, ok := parseKeyLine(key)
		if !ok || base < 1 {
			continue
		}
		if fetch.Intent == IntentToEnd {
			n := base
			if total == nil || n > *total {
				total = &n
			}
		}
		first := base - res.BeforeContext
		for i, content := range contents {
			num := first + i
			if num < 1 {
				continue
			}
			lines = append(lines, Line{Number: num, Content: content})
		}
	}
	return lines, total
}

// parseKeyLine extracts the anchor line of a sample key: the start of a
// "start-end" range, or the line itself for a single-number key.
func parseKeyLine(key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		return n, true
	}
	start, _, found := strings.Cut(key, "-")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(start)
	if err != nil {
		return 0, false
	}
	return n, true
}
