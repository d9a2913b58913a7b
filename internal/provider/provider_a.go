package provider

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

//go:embed provider_a.schema.json
var providerASchema []byte

type payloadSchema struct {
	schema *gojsonschema.Schema
}

func loadProviderASchema() (*payloadSchema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(providerASchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load provider A schema: %w", err)
	}
	return &payloadSchema{schema: schema}, nil
}

func (s *payloadSchema) validate(body []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(problems, "; "))
	}
	return nil
}

// FetchProviderA downloads and decodes the provider A JSON feed.
func (c *Client) FetchProviderA(ctx context.Context) ([]domain.ProviderARecord, error) {
	body, err := c.get(ctx, "A", c.urlA)
	if err != nil {
		return nil, err
	}
	return c.decodeProviderA(body)
}

func (c *Client) decodeProviderA(body []byte) ([]domain.ProviderARecord, error) {
	if err := c.schema.validate(body); err != nil {
		return nil, fmt.Errorf("provider A: %w", err)
	}

	records := make([]domain.ProviderARecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("provider A: %w: %v", ErrInvalidPayload, err)
	}
	return records, nil
}
