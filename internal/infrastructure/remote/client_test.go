package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"milanfood-backend/internal/domain"
)

func TestClient_Submit(t *testing.T) {
	var got domain.Order
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/order" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/"}
	if err := c.Submit(context.Background(), &domain.Order{OrderID: "r-1"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.OrderID != "r-1" {
		t.Fatalf("server saw %+v", got)
	}
}

func TestClient_AppendForwardsPayload(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("Pedido recibido"))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	payload := `{"items":[{"name":"Pizza","price":7000}],"total":17000}`
	if err := c.Append(context.Background(), "in-2", json.RawMessage(payload)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("server saw %s", got)
	}
}

func TestClient_SubmitNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Error al guardar el pedido", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if err := c.Submit(context.Background(), &domain.Order{}); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestClient_NoBaseURL(t *testing.T) {
	if err := (&Client{}).Submit(context.Background(), &domain.Order{}); err == nil {
		t.Fatalf("expected error")
	}
}
