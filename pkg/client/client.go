// Package client talks to the HelloWorld overlay HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/go-resty/resty/v2"
)

// BaseURL is the path prefix of the overlay API.
const BaseURL = "/api/v1"

const xTopicsHeader = "x-topics"

var (
	// ErrUnexpectedResponse is returned for every non-2xx response.
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrUnexpectedAnswer is returned when the lookup answer is not a freeform list of records.
	ErrUnexpectedAnswer = errors.New("unexpected lookup answer")
)

// ResponseError carries the status code and message of a failed request.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUnexpectedResponse, e.StatusCode, e.Message)
}

func (e *ResponseError) Unwrap() error { return ErrUnexpectedResponse }

// Admittance is the per-topic decision returned by Submit.
type Admittance struct {
	OutputsToAdmit []uint32 `json:"outputsToAdmit"`
	CoinsToRetain  []uint32 `json:"coinsToRetain"`
	CoinsRemoved   []uint32 `json:"coinsRemoved,omitempty"`
}

// Metadata describes a registered topic manager or lookup service.
type Metadata struct {
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription"`
	IconURL          string `json:"iconURL,omitempty"`
	Version          string `json:"version,omitempty"`
	InformationURL   string `json:"informationURL,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

type submitResponse struct {
	STEAK map[string]Admittance `json:"STEAK"`
}

type lookupBody struct {
	Service string           `json:"service"`
	Query   helloworld.Query `json:"query"`
}

type lookupAnswer struct {
	Type   lookup.AnswerType `json:"type"`
	Result json.RawMessage   `json:"result"`
}

type messagesResponse struct {
	Messages []storage.MessageRecord `json:"messages"`
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTransport replaces the HTTP transport, e.g. with an in-memory one in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) {
		c.SetTransport(rt)
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(timeout)
	}
}

// WithAdminBearerToken authorizes admin requests.
func WithAdminBearerToken(token string) Option {
	return func(c *resty.Client) {
		c.SetAuthToken(token)
	}
}

// Client is a typed wrapper over the overlay HTTP API.
type Client struct {
	http *resty.Client
}

// New returns a client for the API served at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := resty.New().
		SetBaseURL(baseURL+BaseURL).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return &Client{http: c}
}

// Submit sends a BEEF or raw transaction to the given topics.
func (c *Client) Submit(ctx context.Context, tx []byte, topics ...string) (map[string]Admittance, error) {
	header, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("failed to encode topics: %w", err)
	}

	var out submitResponse
	err = c.do(c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader(xTopicsHeader, string(header)).
		SetBody(tx).
		SetResult(&out), resty.MethodPost, "/submit")
	if err != nil {
		return nil, err
	}
	return out.STEAK, nil
}

// Lookup asks ls_helloworld for the records matching query.
func (c *Client) Lookup(ctx context.Context, query helloworld.Query) ([]storage.MessageRecord, error) {
	var answer lookupAnswer
	err := c.do(c.http.R().
		SetContext(ctx).
		SetBody(lookupBody{Service: helloworld.ServiceName, Query: query}).
		SetResult(&answer), resty.MethodPost, "/lookup")
	if err != nil {
		return nil, err
	}

	if answer.Type != lookup.AnswerTypeFreeform {
		return nil, fmt.Errorf("%w: answer type %q", ErrUnexpectedAnswer, answer.Type)
	}
	records := []storage.MessageRecord{}
	if len(answer.Result) > 0 {
		if err := json.Unmarshal(answer.Result, &records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedAnswer, err)
		}
	}
	return records, nil
}

// Messages runs query through the query-string endpoint.
func (c *Client) Messages(ctx context.Context, query helloworld.Query) ([]storage.MessageRecord, error) {
	req := c.http.R().SetContext(ctx)
	if query.Message != nil {
		req.SetQueryParam("message", *query.Message)
	}
	if query.Limit != nil {
		req.SetQueryParam("limit", strconv.Itoa(*query.Limit))
	}
	if query.Skip != nil {
		req.SetQueryParam("skip", strconv.Itoa(*query.Skip))
	}
	if query.StartDate != nil {
		req.SetQueryParam("startDate", *query.StartDate)
	}
	if query.EndDate != nil {
		req.SetQueryParam("endDate", *query.EndDate)
	}
	if query.SortOrder != "" {
		req.SetQueryParam("sortOrder", query.SortOrder)
	}

	var out messagesResponse
	if err := c.do(req.SetResult(&out), resty.MethodGet, "/messages"); err != nil {
		return nil, err
	}
	if out.Messages == nil {
		return []storage.MessageRecord{}, nil
	}
	return out.Messages, nil
}

// ListTopicManagers returns the topic managers registered on the server.
func (c *Client) ListTopicManagers(ctx context.Context) (map[string]Metadata, error) {
	return c.listMetadata(ctx, "/listTopicManagers")
}

// ListLookupServiceProviders returns the lookup services registered on the server.
func (c *Client) ListLookupServiceProviders(ctx context.Context) (map[string]Metadata, error) {
	return c.listMetadata(ctx, "/listLookupServiceProviders")
}

func (c *Client) listMetadata(ctx context.Context, path string) (map[string]Metadata, error) {
	out := map[string]Metadata{}
	if err := c.do(c.http.R().SetContext(ctx).SetResult(&out), resty.MethodGet, path); err != nil {
		return nil, err
	}
	return out, nil
}

// EvictOutpoint removes an admitted output from topic. Requires WithAdminBearerToken.
func (c *Client) EvictOutpoint(ctx context.Context, txid string, outputIndex uint32, topic string) error {
	return c.do(c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"txid": txid, "outputIndex": outputIndex, "topic": topic}), resty.MethodPost, "/admin/evictOutpoint")
}

func (c *Client) do(req *resty.Request, method, path string) error {
	var failure apiError
	resp, err := req.SetError(&failure).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	if resp.IsError() {
		msg := failure.Message
		if msg == "" {
			msg = resp.Status()
		}
		return &ResponseError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
