package serializer

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger wires the package logger so 5xx responses can be logged with
// their underlying cause even when the detail is hidden from the client.
func SetLogger(l *zap.Logger) { log = l }

// Pagination is the metadata block attached to list responses.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// Response is the envelope for every API response.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func OKMsg(data interface{}, msg string) Response {
	return Response{Success: true, Data: data, Message: msg}
}

func OKPage(data interface{}, p Pagination) Response {
	return Response{Success: true, Data: data, Pagination: &p}
}

// ParamErr is a 400 response. The message is user input feedback and is
// always included; the raw error detail only outside release mode.
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "invalid input"
	}
	res := Response{Success: false, Error: "Invalid input", Message: msg}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Message = msg + ": " + err.Error()
	}
	return res
}

func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "resource not found"
	}
	return Response{Success: false, Error: "Not found", Message: msg}
}

// InternalErr is a 500 response. The cause is logged, never echoed to the
// client in release mode.
func InternalErr(msg string, err error) Response {
	if msg == "" {
		msg = "internal server error"
	}
	if err != nil {
		log.Error("internal error", zap.String("context", msg), zap.Error(err))
	}
	res := Response{Success: false, Error: "Internal error", Message: msg}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Message = msg + ": " + err.Error()
	}
	return res
}
