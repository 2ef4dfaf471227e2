package docs

import (
	"strings"
	"testing"
)

func TestTopicsAndGet(t *testing.T) {
	t.Parallel()

	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for _, want := range []string{"calendar", "filters", "reschedule", "storage"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing topic %q in %v", want, topics)
		}
	}

	body, ok := Get("Calendar")
	if !ok || !strings.Contains(body, "# Calendar") {
		t.Fatalf("expected case-insensitive lookup to return the calendar topic")
	}

	if _, ok := Get("no-such-topic"); ok {
		t.Fatalf("unknown topic should not resolve")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("empty topic should not resolve")
	}
}
