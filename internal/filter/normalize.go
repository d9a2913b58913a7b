package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// DiscoveryDateLayout is the format of NormalizedRecord.DiscoveryDate.
const DiscoveryDateLayout = "2006-01-02 15:04:05"

// dateLayouts are tried in order when parsing provider timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// row is the provider-independent view of a raw record.
type row struct {
	date    string
	level   int
	country string
	source  string
}

// Normalize filters both providers' rows and projects them into the unified
// schema, tagged with taskName. Provider A rows come first.
func Normalize(
	rawA []domain.ProviderARecord,
	rawB []domain.ProviderBRecord,
	filters domain.TaskFilterRequest,
	taskName string,
) ([]domain.ThreatRecord, error) {
	rowsA := make([]row, len(rawA))
	for i, r := range rawA {
		rowsA[i] = row{date: r.DateDetected, level: r.ThreatLevel, country: r.Country, source: r.Source}
	}

	rowsB := make([]row, len(rawB))
	for i, r := range rawB {
		rowsB[i] = row{date: r.DetectionTime, level: r.Severity, country: r.Country, source: r.Source}
	}

	outA, err := apply(rowsA, filters.ProviderA, filters.ProviderA.ThreatLevels, taskName)
	if err != nil {
		return nil, fmt.Errorf("provider A: %w", err)
	}

	outB, err := apply(rowsB, filters.ProviderB, filters.ProviderB.Severity, taskName)
	if err != nil {
		return nil, fmt.Errorf("provider B: %w", err)
	}

	out := make([]domain.ThreatRecord, 0, len(outA)+len(outB))
	out = append(out, outA...)
	return append(out, outB...), nil
}

func apply(rows []row, f domain.ProviderFilter, levels []int, taskName string) ([]domain.ThreatRecord, error) {
	countries := make(map[string]struct{}, len(f.Countries))
	for _, c := range f.Countries {
		countries[c] = struct{}{}
	}

	levelSet := make(map[int]struct{}, len(levels))
	for _, l := range levels {
		levelSet[l] = struct{}{}
	}

	out := make([]domain.ThreatRecord, 0)
	for i, r := range rows {
		// Every row is parsed, even ones the country predicate would drop:
		// a malformed feed fails the whole task.
		ts, err := ParseDate(r.date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		year := ts.Year()
		if year < f.YearFrom || year > f.YearTo {
			continue
		}
		if _, ok := countries[r.country]; !ok {
			continue
		}
		if len(levelSet) > 0 {
			if _, ok := levelSet[r.level]; !ok {
				continue
			}
		}

		out = append(out, domain.ThreatRecord{
			TaskName:      taskName,
			Country:       r.country,
			DiscoveryDate: ts.Format(DiscoveryDateLayout),
			Source:        r.source,
			RiskLevel:     r.level,
		})
	}

	return out, nil
}

// ParseDate parses a provider timestamp in any of the accepted layouts.
// Timestamps carrying an offset keep it; the rendered discovery date is
// the wall-clock time in that offset.
func ParseDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
}
