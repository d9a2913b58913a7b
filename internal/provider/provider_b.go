package provider

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

var providerBColumns = []string{"ip_address", "severity", "detection_time", "country", "source"}

// FetchProviderB downloads and parses the provider B CSV feed.
func (c *Client) FetchProviderB(ctx context.Context) ([]domain.ProviderBRecord, error) {
	body, err := c.get(ctx, "B", c.urlB)
	if err != nil {
		return nil, err
	}

	records, err := parseProviderB(body)
	if err != nil {
		return nil, fmt.Errorf("provider B: %w", err)
	}
	return records, nil
}

// parseProviderB reads CSV rows by header name. Column order is free and
// extra columns are ignored.
func parseProviderB(body []byte) ([]domain.ProviderBRecord, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ProviderBRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidPayload, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range providerBColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidPayload, col)
		}
	}
	r.FieldsPerRecord = len(header)

	records := make([]domain.ProviderBRecord, 0)
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}

		field := func(col string) string { return strings.TrimSpace(row[index[col]]) }

		severity, err := strconv.Atoi(field("severity"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: severity %q is not an integer", ErrInvalidPayload, line, field("severity"))
		}

		records = append(records, domain.ProviderBRecord{
			IPAddress:     field("ip_address"),
			Severity:      severity,
			DetectionTime: field("detection_time"),
			Country:       field("country"),
			Source:        field("source"),
		})
	}

	return records, nil
}
