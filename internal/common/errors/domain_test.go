package commonerrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	commonerrors "github.com/postboard-app/postboard/backend/internal/common/errors"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	wrapped := commonerrors.ErrDatabaseError.WithCause(errors.New("connection refused"))

	if !errors.Is(wrapped, commonerrors.ErrDatabaseError) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if errors.Is(wrapped, commonerrors.ErrInternalError) {
		t.Error("expected different codes not to match")
	}
}

func TestDomainError_WithCauseKeepsOriginal(t *testing.T) {
	cause := errors.New("boom")
	wrapped := commonerrors.ErrDatabaseError.WithCause(cause)

	if commonerrors.ErrDatabaseError.Unwrap() != nil {
		t.Error("expected sentinel to stay cause-free")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestDomainError_WithDetails(t *testing.T) {
	details := map[string]any{"field": "email"}
	err := commonerrors.ErrValidationFailed.WithDetails(details)

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Details()["field"] != "email" {
		t.Errorf("expected details to carry field, got %v", de.Details())
	}
	if commonerrors.ErrValidationFailed.Details() != nil {
		t.Error("expected sentinel details to stay nil")
	}
}

func TestDomainError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err    commonerrors.DomainError
		status int
	}{
		{commonerrors.ErrUnauthenticated, http.StatusUnauthorized},
		{commonerrors.ErrValidationFailed, http.StatusBadRequest},
		{commonerrors.ErrDatabaseError, http.StatusInternalServerError},
		{commonerrors.ErrInternalError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus() != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.err.Code(), tc.status, tc.err.HTTPStatus())
		}
	}
}

func TestAsDomainError_WrappedDeep(t *testing.T) {
	err := fmt.Errorf("handler: %w", commonerrors.ErrUnauthenticated)

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected to find domain error through wrapping")
	}
	if de.Code() != "UNAUTHENTICATED" {
		t.Errorf("expected code UNAUTHENTICATED, got %s", de.Code())
	}
}

func TestAsDomainError_PlainError(t *testing.T) {
	if _, ok := commonerrors.AsDomainError(errors.New("plain")); ok {
		t.Error("expected plain error not to be a domain error")
	}
}
