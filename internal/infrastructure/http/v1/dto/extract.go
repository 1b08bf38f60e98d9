package dto

import (
	"strings"

	"langodata/internal/domain/catalog"
	"langodata/internal/domain/extract"
)

// ReadRequest carries one data-retrieval call. Group and source codes are
// case-insensitive on the wire.
type ReadRequest struct {
	DataGroup   string `json:"data_group" binding:"required"`
	DataSource  string `json:"data_source" binding:"required"`
	DataType    string `json:"data_type" binding:"required"`
	FilterCode  string `json:"filter_code"`
	StartPeriod string `json:"start_period" binding:"required"`
	EndPeriod   string `json:"end_period" binding:"required"`
}

// ToQueryRequest maps the wire shape onto the dispatcher's request.
func (r ReadRequest) ToQueryRequest() extract.QueryRequest {
	return extract.QueryRequest{
		Group:       catalog.DataGroup(strings.ToUpper(r.DataGroup)),
		Source:      catalog.DataSource(strings.ToUpper(r.DataSource)),
		Type:        strings.ToUpper(r.DataType),
		FilterCode:  r.FilterCode,
		StartPeriod: r.StartPeriod,
		EndPeriod:   r.EndPeriod,
	}
}

// ProfileReadRequest carries an institution-register read.
type ProfileReadRequest struct {
	DataGroup  string `json:"data_group" binding:"required"`
	DataSource string `json:"data_source" binding:"required"`
	FilterCode string `json:"filter_code"`
}

// ToProfileRequest maps the wire shape onto the dispatcher's request.
func (r ProfileReadRequest) ToProfileRequest() extract.ProfileRequest {
	return extract.ProfileRequest{
		Group:      catalog.DataGroup(strings.ToUpper(r.DataGroup)),
		Source:     catalog.DataSource(strings.ToUpper(r.DataSource)),
		FilterCode: r.FilterCode,
	}
}

// TablePayload is the row set returned to the caller.
type TablePayload struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Count   int      `json:"count"`
}

// ReadResponse mirrors the dispatcher's result envelope.
type ReadResponse struct {
	Info  string       `json:"info"`
	Debug string       `json:"debug"`
	Table TablePayload `json:"table"`
}

// FromEnvelope maps a result envelope to the response shape.
func FromEnvelope(e extract.ResultEnvelope) ReadResponse {
	columns := e.Table.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := e.Table.Rows
	if rows == nil {
		rows = [][]any{}
	}
	return ReadResponse{
		Info:  e.Info,
		Debug: e.Debug,
		Table: TablePayload{Columns: columns, Rows: rows, Count: len(rows)},
	}
}
