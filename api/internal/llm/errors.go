package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UpstreamError is a failed call to the text-generation API.
// Status is an HTTP-like code: 401 bad credentials, 404 unknown model, 0 unknown.
type UpstreamError struct {
	Engine string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("%s %d: %v", e.Engine, e.Status, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StatusOf returns the upstream status carried by err, or 0.
func StatusOf(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status
	}
	return 0
}

// Wrap classifies an SDK error into an UpstreamError. nil stays nil.
func Wrap(engine string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Engine: engine, Status: classify(err), Err: err}
}

// Gemini reports an invalid key as 400 with reason API_KEY_INVALID.
const reasonKeyInvalid = "API_KEY_INVALID"

func classify(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var ae *apierror.APIError
	if errors.As(err, &ae) {
		if ae.Reason() == reasonKeyInvalid {
			return http.StatusUnauthorized
		}
		if c := ae.HTTPCode(); c > 0 {
			return c
		}
		if c := fromGRPC(ae.GRPCStatus().Code()); c > 0 {
			return c
		}
	}

	var ge *googleapi.Error
	if errors.As(err, &ge) {
		for _, d := range ge.Details {
			if m, ok := d.(map[string]any); ok && m["reason"] == reasonKeyInvalid {
				return http.StatusUnauthorized
			}
		}
		return ge.Code
	}

	if st, ok := status.FromError(err); ok {
		return fromGRPC(st.Code())
	}
	return 0
}

func fromGRPC(c codes.Code) int {
	switch c {
	case codes.Unauthenticated, codes.PermissionDenied:
		return http.StatusUnauthorized
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return 0
	}
}
