package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

const (
	// payloadText is the payload key carrying the unit text.
	payloadText = "text"

	defaultURL        = "http://localhost:6333"
	defaultCollection = "docingest"
	defaultModel      = "sentence-transformers/all-minilm-l6-v2"
	defaultTimeout    = 15 * time.Second
)

// Config holds Qdrant connection configuration.
type Config struct {
	// URL is the Qdrant base URL.
	URL string

	// APIKey authenticates requests when set.
	APIKey string

	// Collection is the collection queried for units.
	Collection string

	// Model names the server-side inference model used to embed queries.
	Model string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Retriever is a minimal REST client to Qdrant.
type Retriever struct {
	url        string
	apiKey     string
	collection string
	model      string
	client     *http.Client
}

// NewRetriever creates a Qdrant retriever with a default HTTP client.
func NewRetriever(cfg Config) *Retriever {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return NewRetrieverWithClient(cfg, &http.Client{Timeout: timeout})
}

// NewRetrieverWithClient creates a Qdrant retriever with a custom HTTP
// client. Used in tests.
func NewRetrieverWithClient(cfg Config, client *http.Client) *Retriever {
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Retriever{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		model:      cfg.Model,
		client:     client,
	}
}

// queryRequest is the body sent to the universal query endpoint.
type queryRequest struct {
	Query       inferenceQuery `json:"query"`
	Limit       int            `json:"limit"`
	Filter      *queryFilter   `json:"filter,omitempty"`
	WithPayload bool           `json:"with_payload"`
}

// inferenceQuery asks the server to embed the text with the named model.
type inferenceQuery struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// queryFilter is the subset of the Qdrant filter DSL the adapter emits.
// Conditions in must all apply; an any match lists alternatives for one key.
type queryFilter struct {
	Must []fieldCondition `json:"must"`
}

type fieldCondition struct {
	Key   string     `json:"key"`
	Match matchValue `json:"match"`
}

type matchValue struct {
	Value string   `json:"value,omitempty"`
	Any   []string `json:"any,omitempty"`
}

// queryResponse is the universal query endpoint's reply.
type queryResponse struct {
	Result struct {
		Points []scoredPoint `json:"points"`
	} `json:"result"`
}

type scoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// Query returns the units most relevant to the query text.
func (r *Retriever) Query(ctx context.Context, query string, params driven.RetrievalParams) ([]domain.RetrievedUnit, error) {
	topK := params.TopK
	if topK <= 0 {
		topK = 10
	}

	body := queryRequest{
		Query:       inferenceQuery{Text: query, Model: r.model},
		Limit:       topK,
		Filter:      buildQueryFilter(params),
		WithPayload: true,
	}

	var resp queryResponse
	url := fmt.Sprintf("%s/collections/%s/points/query", r.url, r.collection)
	if err := r.postJSON(ctx, url, body, &resp); err != nil {
		return nil, fmt.Errorf("querying qdrant: %w", err)
	}

	results := make([]domain.RetrievedUnit, 0, len(resp.Result.Points))
	for _, point := range resp.Result.Points {
		results = append(results, domain.RetrievedUnit{
			Unit:  pointToUnit(point),
			Score: point.Score,
		})
	}
	return results, nil
}

// NativeDocIDs reports that this backend accepts an id list directly.
func (r *Retriever) NativeDocIDs() bool {
	return true
}

// Close releases idle connections.
func (r *Retriever) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

// buildQueryFilter translates the params' scoping into a Qdrant filter.
// An explicit id list becomes one any-of condition on the doc_id payload.
// Otherwise the predicate filter maps clause for clause: keys with several
// values become an any match, keys with one value an exact match, all
// conjoined under must. Nil means no restriction.
func buildQueryFilter(params driven.RetrievalParams) *queryFilter {
	if len(params.DocIDs) > 0 {
		return &queryFilter{Must: []fieldCondition{{
			Key:   domain.MetaDocID,
			Match: matchValue{Any: params.DocIDs},
		}}}
	}

	if params.Filter.IsEmpty() {
		return nil
	}

	byKey := make(map[string][]string)
	order := make([]string, 0, len(params.Filter.Clauses))
	for _, c := range params.Filter.Clauses {
		if _, seen := byKey[c.Key]; !seen {
			order = append(order, c.Key)
		}
		byKey[c.Key] = append(byKey[c.Key], c.Value)
	}

	filter := &queryFilter{Must: make([]fieldCondition, 0, len(order))}
	for _, key := range order {
		values := byKey[key]
		cond := fieldCondition{Key: key}
		if len(values) == 1 {
			cond.Match = matchValue{Value: values[0]}
		} else {
			cond.Match = matchValue{Any: values}
		}
		filter.Must = append(filter.Must, cond)
	}
	return filter
}

// pointToUnit rebuilds a unit from a point's payload. String payload
// values become metadata tags; the text key carries the unit text.
func pointToUnit(point scoredPoint) domain.TextUnit {
	unit := domain.TextUnit{Metadata: make(map[string]string)}
	for key, value := range point.Payload {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if key == payloadText {
			unit.Text = s
			continue
		}
		unit.Metadata[key] = s
	}

	unit.ID = unit.Metadata[domain.MetaDocID]
	if unit.ID == "" {
		unit.ID = fmt.Sprintf("%v", point.ID)
	}
	return unit
}

func (r *Retriever) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("api-key", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
