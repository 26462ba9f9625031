package graph

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnavailableSchemaReturns500(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	rec := httptest.NewRecorder()

	unavailable(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
