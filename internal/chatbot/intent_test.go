package chatbot

import (
	"strings"
	"testing"
)

func TestRespondRouting(t *testing.T) {
	r := NewResponder(fixtureStore(t))

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"overview", "give me a platform overview", "Intelligence Platform Overview"},
		{"incident stats phrase", "show incident statistics please", "Cyber Incidents Statistics"},
		{"incident keyword", "any new security breach?", "Cyber Incidents Statistics"},
		{"ticket stats phrase", "what is our resolution time", "IT Tickets Statistics"},
		{"ticket keyword", "how is support doing", "IT Tickets Statistics"},
		{"dataset keyword", "list the datasets", "Datasets Statistics"},
		{"severity", "how many critical issues", "Cyber Incidents Statistics"},
		{"case insensitive", "PLATFORM Summary", "Intelligence Platform Overview"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Respond(tc.input)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("Respond(%q) = %q, want it to contain %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRespondFallback(t *testing.T) {
	r := NewResponder(fixtureStore(t))
	if got := r.Respond("tell me a joke"); got != fallbackReply {
		t.Fatalf("Respond = %q, want fallback", got)
	}
}

func TestSpecificPhrasesWinOverBroadOnes(t *testing.T) {
	r := NewResponder(fixtureStore(t))
	// "incidents breakdown" contains both the specific phrase and the broad
	// "incident" keyword; the specific rule must fire first.
	got := r.Respond("incidents breakdown")
	if !strings.Contains(got, "Cyber Incidents Statistics") {
		t.Fatalf("Respond = %q", got)
	}
}
