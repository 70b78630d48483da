package chatbot

import "strings"

// Responder routes free-text questions to the statistics formatters with
// simple keyword matching. Rules are checked in order; the first match wins,
// so the specific phrasings come before the broad ones.
type Responder struct {
	store *Store
}

// NewResponder constructs a Responder over the given store.
func NewResponder(store *Store) *Responder {
	return &Responder{store: store}
}

type rule struct {
	keywords []string
	respond  func(*Store) string
}

var rules = []rule{
	{[]string{"overview", "summary", "platform"}, (*Store).FormatOverview},
	{[]string{"incident statistics", "incident stats", "incidents breakdown"}, (*Store).FormatIncidents},
	{[]string{"incident", "security", "breach", "cyber"}, (*Store).FormatIncidents},
	{[]string{"ticket statistics", "ticket stats", "tickets breakdown", "resolution time"}, (*Store).FormatTickets},
	{[]string{"ticket", "support"}, (*Store).FormatTickets},
	{[]string{"dataset statistics", "dataset stats", "datasets breakdown"}, (*Store).FormatDatasets},
	{[]string{"dataset", "data"}, (*Store).FormatDatasets},
	{[]string{"severity", "critical"}, (*Store).FormatIncidents},
	{[]string{"performance", "metrics", "resolution"}, (*Store).FormatTickets},
}

const fallbackReply = "I can report platform statistics. Try 'overview', 'incidents', 'tickets', or 'datasets'."

// Respond answers a user message. Unrecognized input gets a usage hint, not
// an error.
func (r *Responder) Respond(input string) string {
	lowered := strings.ToLower(input)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.respond(r.store)
			}
		}
	}
	return fallbackReply
}
