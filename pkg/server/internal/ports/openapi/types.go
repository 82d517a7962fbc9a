// Package openapi holds the request and response bodies of the overlay HTTP API.
package openapi

import "encoding/json"

// Error is the body returned for every failed request.
type Error struct {
	Message string `json:"message"`
}

// BadRequestResponse is returned with 4xx status codes.
type BadRequestResponse = Error

// InternalServerErrorResponse is returned with 5xx status codes.
type InternalServerErrorResponse = Error

// AdmittanceInstructions describes what a topic manager decided about a submitted transaction.
type AdmittanceInstructions struct {
	OutputsToAdmit []uint32 `json:"outputsToAdmit"`
	CoinsToRetain  []uint32 `json:"coinsToRetain"`
	CoinsRemoved   []uint32 `json:"coinsRemoved,omitempty"`
	AncillaryTxIDs []string `json:"ancillaryTxids,omitempty"`
}

// STEAK maps each submitted topic to its admittance instructions.
type STEAK map[string]AdmittanceInstructions

// SubmitTransactionResponse is the body returned by the submit endpoint.
type SubmitTransactionResponse struct {
	STEAK STEAK `json:"STEAK"`
}

// LookupQuestionBody is the request body of the lookup endpoint.
type LookupQuestionBody struct {
	Service string          `json:"service"`
	Query   json.RawMessage `json:"query,omitempty"`
}

// OutputListItem is a single output-list entry of a lookup answer.
type OutputListItem struct {
	Beef        []byte `json:"beef"`
	OutputIndex uint32 `json:"outputIndex"`
}

// LookupAnswer is the body returned by the lookup endpoint.
type LookupAnswer struct {
	Type    string           `json:"type"`
	Outputs []OutputListItem `json:"outputs,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
}

// MessageRecord is a single indexed hello world message.
type MessageRecord struct {
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"outputIndex"`
	Message     string `json:"message"`
	CreatedAt   string `json:"createdAt"`
}

// MessagesResponse is the body returned by the messages endpoint.
type MessagesResponse struct {
	Messages []MessageRecord `json:"messages"`
}

// MessagesParams are the query-string parameters of the messages endpoint.
type MessagesParams struct {
	Message   *string `form:"message,omitempty" json:"message,omitempty"`
	Limit     *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Skip      *int    `form:"skip,omitempty" json:"skip,omitempty"`
	StartDate *string `form:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *string `form:"endDate,omitempty" json:"endDate,omitempty"`
	SortOrder *string `form:"sortOrder,omitempty" json:"sortOrder,omitempty"`
}

// Metadata describes a topic manager or lookup service.
type Metadata struct {
	Name             string  `json:"name"`
	ShortDescription string  `json:"shortDescription"`
	IconURL          *string `json:"iconURL,omitempty"`
	Version          *string `json:"version,omitempty"`
	InformationURL   *string `json:"informationURL,omitempty"`
}

// MetadataListResponse maps registered names to their metadata.
type MetadataListResponse map[string]Metadata

// DocumentationResponse carries markdown documentation.
type DocumentationResponse struct {
	Documentation string `json:"documentation"`
}

// EvictOutpointBody is the request body of the admin evict endpoint.
type EvictOutpointBody struct {
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"outputIndex"`
	Topic       string `json:"topic"`
}

// EvictOutpointResponse confirms an eviction.
type EvictOutpointResponse struct {
	Message string `json:"message"`
}
