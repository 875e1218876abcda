package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/college-baseball-live/internal/platform/poller"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "college-baseball-live"
)

// envelope is the Google JSON style body every endpoint answers with.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	httpStatus int
	reason     string
	status     string
}

var internalClass = errorClass{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorClasses is checked in order; the first errors.Is match wins.
var errorClasses = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrDependencyUnavailable, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{poller.ErrIdle, errorClass{http.StatusConflict, "pollerIdle", "FAILED_PRECONDITION"}},
	{context.DeadlineExceeded, errorClass{http.StatusGatewayTimeout, "deadlineExceeded", "DEADLINE_EXCEEDED"}},
}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c.class
		}
	}
	return internalClass
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeClassified(ctx, w, classify(err), err.Error())
}

// writeInternalError hides the cause; used after a recovered panic.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeClassified(ctx, w, internalClass, "internal server error")
}

func writeClassified(ctx context.Context, w http.ResponseWriter, c errorClass, msg string) {
	writeJSON(ctx, w, c.httpStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    c.httpStatus,
			Message: msg,
			Status:  c.status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: c.reason, Message: msg}},
		},
	})
}
