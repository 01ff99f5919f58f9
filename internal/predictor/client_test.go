package predictor_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/report-triage/internal/predictor"
)

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req predictor.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Comment != "app is odd" {
			t.Errorf("unexpected comment %q", req.Comment)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(predictor.PredictResponse{
			Category:     "performance_issues",
			Confidence:   0.81,
			ModelVersion: "tfidf-v4",
		})
	}))
	defer srv.Close()

	client := predictor.NewClient(srv.URL, 0)
	resp, err := client.Predict(context.Background(), &predictor.PredictRequest{
		Comment:  "app is odd",
		OCRTexts: []string{"Loading"},
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resp.Category != "performance_issues" || resp.ModelVersion != "tfidf-v4" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPredict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := predictor.NewClient(srv.URL, 0)
	if _, err := client.Predict(context.Background(), &predictor.PredictRequest{Comment: "x"}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestPredict_Unreachable(t *testing.T) {
	client := predictor.NewClient("http://127.0.0.1:1", 0)
	_, err := client.Predict(context.Background(), &predictor.PredictRequest{Comment: "x"})
	if !errors.Is(err, predictor.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"model_version": "tfidf-v4"})
	}))
	defer srv.Close()

	client := predictor.NewClient(srv.URL, 0)
	version, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if version != "tfidf-v4" {
		t.Errorf("unexpected model version %q", version)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := predictor.NewClient(srv.URL, 0)
	if _, err := client.Health(context.Background()); err == nil {
		t.Error("expected error for unhealthy service")
	}
}
