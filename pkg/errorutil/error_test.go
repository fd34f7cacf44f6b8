package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKinds(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		kind      Kind
		status    int
		retryable bool
	}{
		{"not found", NotFound("product not found with id: %d", 7), KindNotFound, http.StatusNotFound, false},
		{"validation", Validation("quantity must be at least 1", nil), KindValidation, http.StatusBadRequest, false},
		{"transient", TransientStore("query", storeErr), KindTransientStore, http.StatusServiceUnavailable, true},
		{"wrapped transient", fmt.Errorf("seven day check: %w", TransientStore("query", storeErr)), KindTransientStore, http.StatusServiceUnavailable, true},
		{"plain", errors.New("boom"), KindInternal, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %s, want %s", got, tt.kind)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestTransientStoreUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := fmt.Errorf("job failed: %w", TransientStore("find expired", cause))

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the store cause")
	}
	if IsNotFound(err) || IsValidation(err) {
		t.Fatalf("transient error misclassified: %v", err)
	}
}

func TestNilError(t *testing.T) {
	if Wrap(nil) != nil {
		t.Fatal("Wrap(nil) should be nil")
	}
	if KindOf(nil) != "" || IsRetryable(nil) {
		t.Fatal("nil error should have no kind")
	}
	if HTTPStatus(nil) != http.StatusOK {
		t.Fatal("nil error should map to 200")
	}
}
