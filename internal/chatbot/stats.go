// Package chatbot answers canned statistics questions from the platform's
// CSV exports. Loads are cheap but not free, so concurrent requests for the
// same file are collapsed through singleflight.
package chatbot

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	incidentsFile = "cyber_incidents.csv"
	ticketsFile   = "it_tickets.csv"
	datasetsFile  = "datasets_metadata.csv"
)

// IncidentStats aggregates the incident export.
type IncidentStats struct {
	Total              int
	BySeverity         map[string]int
	ByCategory         map[string]int
	ByStatus           map[string]int
	SeverityPercentage map[string]float64
	StatusPercentage   map[string]float64
	RecentCount        int
}

// TicketStats aggregates the ticket export.
type TicketStats struct {
	Total                 int
	ByPriority            map[string]int
	ByStatus              map[string]int
	ByAssignee            map[string]int
	PriorityPercentage    map[string]float64
	StatusPercentage      map[string]float64
	AvgResolutionHours    float64
	MedianResolutionHours float64
	MinResolutionHours    float64
	MaxResolutionHours    float64
	HasResolutionData     bool
}

// DatasetStats aggregates the dataset metadata export.
type DatasetStats struct {
	Total      int
	ByUploader map[string]int
	TotalRows  int
	AvgRows    int
	MaxRows    int
	MinRows    int
	AvgColumns float64
}

// Store reads and aggregates the CSV exports under a data directory.
type Store struct {
	dir string
	now func() time.Time
	sf  singleflight.Group
}

// NewStore constructs a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Incidents computes incident statistics. An absent or empty file yields an
// error rather than zeroed statistics.
func (s *Store) Incidents() (IncidentStats, error) {
	v, err, _ := s.sf.Do("incidents", func() (any, error) {
		return s.loadIncidents()
	})
	if err != nil {
		return IncidentStats{}, err
	}
	return v.(IncidentStats), nil
}

// Tickets computes ticket statistics.
func (s *Store) Tickets() (TicketStats, error) {
	v, err, _ := s.sf.Do("tickets", func() (any, error) {
		return s.loadTickets()
	})
	if err != nil {
		return TicketStats{}, err
	}
	return v.(TicketStats), nil
}

// Datasets computes dataset statistics.
func (s *Store) Datasets() (DatasetStats, error) {
	v, err, _ := s.sf.Do("datasets", func() (any, error) {
		return s.loadDatasets()
	})
	if err != nil {
		return DatasetStats{}, err
	}
	return v.(DatasetStats), nil
}

func (s *Store) loadIncidents() (IncidentStats, error) {
	rows, idx, err := s.readCSV(incidentsFile)
	if err != nil {
		return IncidentStats{}, err
	}

	stats := IncidentStats{
		Total:      len(rows),
		BySeverity: map[string]int{},
		ByCategory: map[string]int{},
		ByStatus:   map[string]int{},
	}
	cutoff := s.now().AddDate(0, 0, -30)
	for _, row := range rows {
		if v := field(row, idx, "severity"); v != "" {
			stats.BySeverity[v]++
		}
		if v := field(row, idx, "category"); v != "" {
			stats.ByCategory[v]++
		}
		if v := field(row, idx, "status"); v != "" {
			stats.ByStatus[v]++
		}
		if ts := field(row, idx, "timestamp"); ts != "" {
			if t, err := parseTimestamp(ts); err == nil && !t.Before(cutoff) {
				stats.RecentCount++
			}
		}
	}
	stats.SeverityPercentage = percentages(stats.BySeverity, stats.Total)
	stats.StatusPercentage = percentages(stats.ByStatus, stats.Total)
	return stats, nil
}

func (s *Store) loadTickets() (TicketStats, error) {
	rows, idx, err := s.readCSV(ticketsFile)
	if err != nil {
		return TicketStats{}, err
	}

	stats := TicketStats{
		Total:      len(rows),
		ByPriority: map[string]int{},
		ByStatus:   map[string]int{},
		ByAssignee: map[string]int{},
	}
	var resolution []float64
	for _, row := range rows {
		if v := field(row, idx, "priority"); v != "" {
			stats.ByPriority[v]++
		}
		if v := field(row, idx, "status"); v != "" {
			stats.ByStatus[v]++
		}
		if v := field(row, idx, "assigned_to"); v != "" {
			stats.ByAssignee[v]++
		}
		if v := field(row, idx, "resolution_time_hours"); v != "" {
			if h, err := strconv.ParseFloat(v, 64); err == nil {
				resolution = append(resolution, h)
			}
		}
	}
	stats.PriorityPercentage = percentages(stats.ByPriority, stats.Total)
	stats.StatusPercentage = percentages(stats.ByStatus, stats.Total)

	if len(resolution) > 0 {
		stats.HasResolutionData = true
		sort.Float64s(resolution)
		var sum float64
		for _, h := range resolution {
			sum += h
		}
		stats.AvgResolutionHours = round1(sum / float64(len(resolution)))
		stats.MinResolutionHours = resolution[0]
		stats.MaxResolutionHours = resolution[len(resolution)-1]
		stats.MedianResolutionHours = round1(median(resolution))
	}
	return stats, nil
}

func (s *Store) loadDatasets() (DatasetStats, error) {
	rows, idx, err := s.readCSV(datasetsFile)
	if err != nil {
		return DatasetStats{}, err
	}

	stats := DatasetStats{
		Total:      len(rows),
		ByUploader: map[string]int{},
		MinRows:    math.MaxInt,
	}
	var rowCounts, colCounts int
	var withRows, withCols int
	for _, row := range rows {
		if v := field(row, idx, "uploaded_by"); v != "" {
			stats.ByUploader[v]++
		}
		if v := field(row, idx, "rows"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				rowCounts += n
				withRows++
				if n > stats.MaxRows {
					stats.MaxRows = n
				}
				if n < stats.MinRows {
					stats.MinRows = n
				}
			}
		}
		if v := field(row, idx, "columns"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				colCounts += n
				withCols++
			}
		}
	}
	stats.TotalRows = rowCounts
	if withRows > 0 {
		stats.AvgRows = rowCounts / withRows
	} else {
		stats.MinRows = 0
	}
	if withCols > 0 {
		stats.AvgColumns = round1(float64(colCounts) / float64(withCols))
	}
	return stats, nil
}

// readCSV returns the data rows and a header index. The first record is
// always treated as the header.
func (s *Store) readCSV(name string) ([][]string, map[string]int, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("no data available: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("no data available in %s", name)
	}

	idx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		idx[col] = i
	}
	return records[1:], idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

func percentages(counts map[string]int, total int) map[string]float64 {
	if total == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(counts))
	for k, v := range counts {
		out[k] = round1(float64(v) / float64(total) * 100)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
