package zyra

import "zyracss/common"

// Stats summarizes one generation call.
type Stats struct {
	ValidClasses     int     `json:"validClasses"`
	GeneratedRules   int     `json:"generatedRules"`
	FromCache        bool    `json:"fromCache"`
	CompressionRatio float64 `json:"compressionRatio,omitempty"`
	Truncated        bool    `json:"truncated,omitempty"`
}

// Result is the successful outcome of a generation call. Invalid entries
// never fail the batch; they ride along here.
type Result struct {
	CSS     string           `json:"css"`
	Valid   []string         `json:"valid"`
	Invalid []common.Invalid `json:"invalid"`
	Stats   Stats            `json:"stats"`
}

// Response is the API-boundary envelope used by collaborators (HTTP
// handlers, the CLI): success with data, or a coded error.
type Response struct {
	Success bool          `json:"success"`
	Data    *Result       `json:"data,omitempty"`
	Error   *common.Error `json:"error,omitempty"`
}

// NewResponse wraps an engine call outcome into the envelope.
func NewResponse(result *Result, err *common.Error) Response {
	if err != nil {
		return Response{Success: false, Error: err}
	}
	return Response{Success: true, Data: result}
}

// EngineStats exposes engine-lifetime counters.
type EngineStats struct {
	CacheSize        int    `json:"cacheSize"`
	TotalGenerations uint64 `json:"totalGenerations"`
}
