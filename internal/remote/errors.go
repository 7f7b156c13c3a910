package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated is wrapped by a RequestError when the authority rejects
// the call because the credential is missing or invalid.
var ErrUnauthenticated = errors.New("unauthenticated")

// RequestError is returned for every failed call: non-success responses as
// well as transport failures, which carry a zero StatusCode.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsUnauthenticated reports whether err stems from a rejected credential.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func newResponseError(resp *http.Response, body []byte) *RequestError {
	msg := detailMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	reqErr := &RequestError{StatusCode: resp.StatusCode, Message: msg}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		reqErr.Err = ErrUnauthenticated
	case resp.StatusCode == http.StatusForbidden && msg == "Not authenticated":
		reqErr.Err = ErrUnauthenticated
	}

	return reqErr
}

func newTransportError(err error) *RequestError {
	return &RequestError{Message: err.Error(), Err: err}
}

// detailMessage extracts {"detail": "..."} or joins the msg fields of a
// validation issue list. It returns "" when the body has neither shape.
func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}

	var issues []validationIssue
	if err := json.Unmarshal(eb.Detail, &issues); err != nil {
		return ""
	}

	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Msg != "" {
			msgs = append(msgs, issue.Msg)
		}
	}

	return strings.Join(msgs, "; ")
}
