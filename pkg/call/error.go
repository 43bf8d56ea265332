package call

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// APIError is the translated form of every remote or transport failure.
type APIError struct {
	Code       codes.Code
	Message    string
	TrackingID string
	Cause      error
}

func (e *APIError) Error() string {
	if e.TrackingID == "" {
		return fmt.Sprintf("api error: code=%s message=%q", e.Code, e.Message)
	}
	return fmt.Sprintf("api error: code=%s message=%q tracking_id=%s", e.Code, e.Message, e.TrackingID)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// TrackedError carries the tracking id the remote side attached to a failed call.
type TrackedError struct {
	Err        error
	TrackingID string
}

func (e *TrackedError) Error() string {
	return e.Err.Error()
}

func (e *TrackedError) Unwrap() error {
	return e.Err
}

// GRPCStatus keeps the status of the wrapped error visible to status.FromError
// without the wrapper changing its message.
func (e *TrackedError) GRPCStatus() *status.Status {
	st, _ := status.FromError(e.Err)
	return st
}

// WithTrackingID returns err unchanged when there is nothing to attach.
func WithTrackingID(err error, trackingID string) error {
	if err == nil || trackingID == "" {
		return err
	}
	return &TrackedError{Err: err, TrackingID: trackingID}
}

// Translate converts err into an *APIError keeping err as the cause.
// Already translated errors are returned as is.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	st, _ := status.FromError(err)

	translated := &APIError{
		Code:    st.Code(),
		Message: st.Message(),
		Cause:   err,
	}

	var tracked *TrackedError
	if errors.As(err, &tracked) {
		translated.TrackingID = tracked.TrackingID
	}

	return translated
}
