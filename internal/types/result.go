package types

import (
	"strings"
	"time"
)

// RequestResult contains the HTTP response data
type RequestResult struct {
	ID           string            `json:"id" yaml:"id"`
	RequestID    string            `json:"requestId" yaml:"requestId"`
	Status       int               `json:"status" yaml:"status"`
	StatusText   string            `json:"statusText" yaml:"statusText"`
	Headers      map[string]string `json:"headers" yaml:"headers"`
	Body         string            `json:"body" yaml:"body"`
	Duration     int64             `json:"duration" yaml:"duration"`         // milliseconds
	RequestSize  int               `json:"requestSize" yaml:"requestSize"`   // bytes
	ResponseSize int               `json:"responseSize" yaml:"responseSize"` // bytes
	Cookies      []string          `json:"cookies,omitempty" yaml:"cookies,omitempty"`
	Error        string            `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt    time.Time         `json:"createdAt" yaml:"createdAt"`
}

// Failed reports whether the request never produced a response.
func (r *RequestResult) Failed() bool { return r.Error != "" }

func (r *RequestResult) IsSuccess() bool     { return r.Status >= 200 && r.Status < 300 }
func (r *RequestResult) IsRedirect() bool    { return r.Status >= 300 && r.Status < 400 }
func (r *RequestResult) IsClientError() bool { return r.Status >= 400 && r.Status < 500 }
func (r *RequestResult) IsServerError() bool { return r.Status >= 500 }

// ContentType returns the response Content-Type header, if any.
func (r *RequestResult) ContentType() string {
	v, _ := lookupFold(r.Headers, "Content-Type")
	return v
}

func (r *RequestResult) IsJSON() bool {
	return strings.Contains(r.ContentType(), "json")
}

func (r *RequestResult) IsXML() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/xml") || strings.Contains(ct, "text/xml")
}

func (r *RequestResult) IsHTML() bool {
	return strings.Contains(r.ContentType(), "text/html")
}

// HeadersText renders response headers sorted, one "Key: Value" per line.
func (r *RequestResult) HeadersText() string {
	return KeyValueText(r.Headers, ": ")
}

// HistoryEntry represents a saved request/response pair
type HistoryEntry struct {
	ID        int64          `json:"id" yaml:"id"`
	Request   HttpRequest    `json:"request" yaml:"request"`
	Result    *RequestResult `json:"result,omitempty" yaml:"result,omitempty"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Title is the one-line label used in lists and fuzzy search.
func (h HistoryEntry) Title() string {
	return string(h.Request.Method) + " " + h.Request.URL
}
