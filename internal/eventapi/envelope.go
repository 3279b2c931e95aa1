package eventapi

// envelope.go normalizes the registration API's historical response shapes.
//
// The backend has shipped (at least) four envelope formats over time:
//   - a bare JSON array of records
//   - {"data": [...]}
//   - {"data": {"data": [...], "current_page": n, "last_page": n, ...}}
//   - {"data": [...], "meta": {"current_page": n, ...}}
//
// ParsePage attempts each shape in that fixed priority order and returns a
// tagged Page so callers never branch on ad hoc property presence.

import (
	"encoding/json"
	"fmt"
)

// Record is one raw registration or organization payload as returned by the
// API, before any normalization.
type Record map[string]any

// PageKind identifies which envelope shape a response used.
type PageKind string

const (
	KindFlat     PageKind = "flat"     // bare array
	KindEnvelope PageKind = "envelope" // {data: [...]}
	KindNested   PageKind = "nested"   // {data: {data: [...], current_page, ...}}
	KindMetaed   PageKind = "metaed"   // {data: [...], meta: {...}}
)

// PageInfo carries pagination metadata when the envelope provides it.
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
}

// Page is one parsed page of records, uniform across envelope shapes.
// Pagination is nil for shapes that carry no metadata.
type Page struct {
	Kind       PageKind
	Records    []Record
	Pagination *PageInfo
}

type rawEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *PageInfo       `json:"meta"`
}

type rawNested struct {
	Data        []Record `json:"data"`
	CurrentPage int      `json:"current_page"`
	LastPage    int      `json:"last_page"`
	Total       int      `json:"total"`
	PerPage     int      `json:"per_page"`
}

// ParsePage decodes a response body into a Page, trying the known envelope
// shapes in priority order: flat array, {data:[...]}, nested, metaed.
func ParsePage(body []byte) (Page, error) {
	// Shape 1: bare array.
	var flat []Record
	if err := json.Unmarshal(body, &flat); err == nil {
		return Page{Kind: KindFlat, Records: flat}, nil
	}

	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Page{}, fmt.Errorf("parse page: unrecognized envelope: %w", err)
	}
	if env.Data == nil {
		return Page{}, fmt.Errorf("parse page: no data field in response")
	}

	// Shapes 2 and 4: data is an array, optionally with a meta sibling.
	var records []Record
	if err := json.Unmarshal(env.Data, &records); err == nil {
		if env.Meta != nil {
			return Page{Kind: KindMetaed, Records: records, Pagination: env.Meta}, nil
		}
		return Page{Kind: KindEnvelope, Records: records}, nil
	}

	// Shape 3: data is itself a paginator object.
	var nested rawNested
	if err := json.Unmarshal(env.Data, &nested); err != nil {
		return Page{}, fmt.Errorf("parse page: data is neither array nor paginator: %w", err)
	}
	return Page{
		Kind:    KindNested,
		Records: nested.Data,
		Pagination: &PageInfo{
			CurrentPage: nested.CurrentPage,
			LastPage:    nested.LastPage,
			Total:       nested.Total,
			PerPage:     nested.PerPage,
		},
	}, nil
}
