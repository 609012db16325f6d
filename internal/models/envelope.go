package models

import (
	"fmt"
	"time"
)

// Envelope types on the wire
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// MessageEnvelope is the top-level frame exchanged with the window server.
// Exactly one of Request, Response or Event is set, matching Type.
type MessageEnvelope struct {
	Type     string    `json:"type"`
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

// Response represents an RPC response
type Response struct {
	ID     string                 `json:"id"`
	Result map[string]interface{} `json:"result,omitempty"`
	Error  *ErrorInfo             `json:"error,omitempty"`
}

// ErrorInfo is the error payload of a failed response. It satisfies error
// so callers can return it directly.
type ErrorInfo struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// Event is an unsolicited notification pushed by the server
type Event struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewRequest creates a new request envelope. A nil params map is sent as {}.
func NewRequest(id, method string, params map[string]interface{}) *MessageEnvelope {
	if params == nil {
		params = map[string]interface{}{}
	}
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: params,
		},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// Err returns the response error, or nil on success
func (r *Response) Err() error {
	if r.Error != nil {
		return r.Error
	}
	return nil
}
