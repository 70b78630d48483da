package chatbot

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// FormatIncidents renders the detailed incident breakdown.
func (s *Store) FormatIncidents() string {
	stats, err := s.Incidents()
	if err != nil {
		return "No incident data available"
	}

	var b strings.Builder
	b.WriteString("Cyber Incidents Statistics\n\n")
	fmt.Fprintf(&b, "Total incidents: %d\n", stats.Total)
	fmt.Fprintf(&b, "Recent (last 30 days): %d\n", stats.RecentCount)

	b.WriteString("\nBy severity:\n")
	writeCountsWithPercent(&b, stats.BySeverity, stats.SeverityPercentage)

	b.WriteString("\nBy status:\n")
	writeCountsWithPercent(&b, stats.ByStatus, stats.StatusPercentage)

	b.WriteString("\nTop categories:\n")
	for _, kv := range topN(stats.ByCategory, 5) {
		fmt.Fprintf(&b, "- %s: %d\n", titler.String(kv.key), kv.count)
	}
	return b.String()
}

// FormatTickets renders the detailed ticket breakdown.
func (s *Store) FormatTickets() string {
	stats, err := s.Tickets()
	if err != nil {
		return "No ticket data available"
	}

	var b strings.Builder
	b.WriteString("IT Tickets Statistics\n\n")
	fmt.Fprintf(&b, "Total tickets: %d\n", stats.Total)

	b.WriteString("\nBy priority:\n")
	writeCountsWithPercent(&b, stats.ByPriority, stats.PriorityPercentage)

	b.WriteString("\nBy status:\n")
	writeCountsWithPercent(&b, stats.ByStatus, stats.StatusPercentage)

	if stats.HasResolutionData {
		b.WriteString("\nResolution time:\n")
		fmt.Fprintf(&b, "- Average: %.1f hours\n", stats.AvgResolutionHours)
		fmt.Fprintf(&b, "- Median: %.1f hours\n", stats.MedianResolutionHours)
		fmt.Fprintf(&b, "- Fastest: %.0f hours\n", stats.MinResolutionHours)
		fmt.Fprintf(&b, "- Slowest: %.0f hours\n", stats.MaxResolutionHours)
	}

	b.WriteString("\nTop assignees:\n")
	for _, kv := range topN(stats.ByAssignee, 5) {
		fmt.Fprintf(&b, "- %s: %d tickets\n", kv.key, kv.count)
	}
	return b.String()
}

// FormatDatasets renders the detailed dataset breakdown.
func (s *Store) FormatDatasets() string {
	stats, err := s.Datasets()
	if err != nil {
		return "No dataset data available"
	}

	var b strings.Builder
	b.WriteString("Datasets Statistics\n\n")
	fmt.Fprintf(&b, "Total datasets: %d\n", stats.Total)
	fmt.Fprintf(&b, "Total rows: %d\n", stats.TotalRows)
	fmt.Fprintf(&b, "Average rows per dataset: %d\n", stats.AvgRows)
	fmt.Fprintf(&b, "Average columns: %.1f\n", stats.AvgColumns)

	b.WriteString("\nSize range:\n")
	fmt.Fprintf(&b, "- Largest: %d rows\n", stats.MaxRows)
	fmt.Fprintf(&b, "- Smallest: %d rows\n", stats.MinRows)

	b.WriteString("\nBy uploader:\n")
	for _, kv := range topN(stats.ByUploader, 10) {
		fmt.Fprintf(&b, "- %s: %d datasets\n", kv.key, kv.count)
	}
	return b.String()
}

// FormatOverview renders the cross-domain summary.
func (s *Store) FormatOverview() string {
	var b strings.Builder
	b.WriteString("Intelligence Platform Overview\n")

	if stats, err := s.Incidents(); err == nil {
		b.WriteString("\nCyber incidents:\n")
		fmt.Fprintf(&b, "- Total: %d\n", stats.Total)
		fmt.Fprintf(&b, "- Critical/high: %d\n", stats.BySeverity["critical"]+stats.BySeverity["high"])
		fmt.Fprintf(&b, "- Open: %d\n", stats.ByStatus["open"])
	}
	if stats, err := s.Tickets(); err == nil {
		b.WriteString("\nIT tickets:\n")
		fmt.Fprintf(&b, "- Total: %d\n", stats.Total)
		fmt.Fprintf(&b, "- Urgent: %d\n", stats.ByPriority["urgent"])
		fmt.Fprintf(&b, "- Open: %d\n", stats.ByStatus["open"])
		if stats.HasResolutionData {
			fmt.Fprintf(&b, "- Average resolution: %.1f hours\n", stats.AvgResolutionHours)
		}
	}
	if stats, err := s.Datasets(); err == nil {
		b.WriteString("\nDatasets:\n")
		fmt.Fprintf(&b, "- Total: %d\n", stats.Total)
		fmt.Fprintf(&b, "- Total rows: %d\n", stats.TotalRows)
		fmt.Fprintf(&b, "- Average size: %d rows\n", stats.AvgRows)
	}

	b.WriteString("\nAsk about 'incidents', 'tickets', or 'datasets' for details.\n")
	return b.String()
}

func writeCountsWithPercent(b *strings.Builder, counts map[string]int, pct map[string]float64) {
	for _, kv := range topN(counts, len(counts)) {
		fmt.Fprintf(b, "- %s: %d (%.1f%%)\n", titler.String(kv.key), kv.count, pct[kv.key])
	}
}

type keyCount struct {
	key   string
	count int
}

// topN returns the n highest counts, ties broken alphabetically so output
// is stable.
func topN(counts map[string]int, n int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, keyCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
