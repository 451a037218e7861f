package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"maize_maturity"
	"maize_maturity/internal/model"
	"maize_maturity/internal/models"
	"maize_maturity/internal/repository"
	"maize_maturity/internal/service"
)

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) maize_maturity.ErrorResponse {
	t.Helper()
	var out maize_maturity.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHome(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doJSON(t, r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var info maize_maturity.InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Message != serviceName || info.Status != maize_maturity.StatusRunning {
		t.Fatalf("unexpected info: %+v", info)
	}
	for _, p := range []string{"/predict", "/health"} {
		if _, ok := info.Endpoints[p]; !ok {
			t.Fatalf("endpoint %s missing from %v", p, info.Endpoints)
		}
	}
}

func TestHealth_AlwaysOK(t *testing.T) {
	for _, st := range []maize_maturity.HealthResponse{
		{Status: maize_maturity.StatusHealthy, ModelLoaded: true, Timestamp: "2025-01-01T00:00:00Z", Version: "1.0.0"},
		{Status: maize_maturity.StatusUnhealthy, ModelLoaded: false, Timestamp: "2025-01-01T00:00:00Z", Version: "1.0.0"},
	} {
		r := newTestRouter(&service.Service{Monitoring: &mockMonitoring{status: st}})
		w := doJSON(t, r, http.MethodGet, "/health", "")
		if w.Code != http.StatusOK {
			t.Fatalf("health must always be 200, got %d", w.Code)
		}
		var got maize_maturity.HealthResponse
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got != st {
			t.Fatalf("got %+v; want %+v", got, st)
		}
	}
}

func TestPredict_Success(t *testing.T) {
	pred := &mockPrediction{ready: true, result: models.PredictionResult{Label: models.LabelMature, Raw: 1}}
	r := newTestRouter(&service.Service{Prediction: pred})

	w := doJSON(t, r, http.MethodPost, "/predict", `{"R":100,"G":150,"B":50,"temperature":25,"humidity":60}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp maize_maturity.PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Prediction != "Mature" || resp.Confidence != 1 || resp.Status != maize_maturity.StatusSuccess {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if pred.calls != 1 {
		t.Fatalf("Predict calls=%d", pred.calls)
	}
	if fmt.Sprint(pred.lastData["R"]) != "100" || fmt.Sprint(pred.lastData["humidity"]) != "60" {
		t.Fatalf("body not passed through: %v", pred.lastData)
	}
}

func TestPredict_BodyDecoding(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantNil bool
	}{
		{"empty body", "", true},
		{"whitespace", "   ", true},
		{"malformed", `{"R":`, true},
		{"null", `null`, true},
		{"array", `[1,2,3]`, true},
		{"string", `"R"`, true},
		{"trailing garbage", `{"R":1} {"G":2}`, true},
		{"object", `{"R":"100"}`, false},
		{"empty object", `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred := &mockPrediction{ready: true, err: service.ErrNoData}
			r := newTestRouter(&service.Service{Prediction: pred})
			doJSON(t, r, http.MethodPost, "/predict", tc.body)
			if (pred.lastData == nil) != tc.wantNil {
				t.Fatalf("data nil=%v; want nil=%v (data=%v)", pred.lastData == nil, tc.wantNil, pred.lastData)
			}
		})
	}
}

func TestPredict_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   int
		wantError  string
		wantStatus string
		wantDetail bool
	}{
		{"unavailable", service.ErrModelUnavailable, http.StatusServiceUnavailable, service.ErrModelUnavailable.Error(), maize_maturity.StatusUnavailable, false},
		{"no data", service.ErrNoData, http.StatusBadRequest, "no data provided", maize_maturity.StatusError, false},
		{"validation", &service.ValidationError{Field: "R", Reason: "R must be between 0 and 255"}, http.StatusBadRequest, "R must be between 0 and 255", maize_maturity.StatusError, false},
		{"model failure", fmt.Errorf("%w: %w", service.ErrPredictionFailed, errors.New("bad tensor")), http.StatusInternalServerError, errPrediction, maize_maturity.StatusError, true},
		{"unexpected", errors.New("???"), http.StatusInternalServerError, errInternal, maize_maturity.StatusError, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pred := &mockPrediction{ready: true, err: tc.err}
			r := newTestRouter(&service.Service{Prediction: pred})
			w := doJSON(t, r, http.MethodPost, "/predict", `{"R":1}`)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d; want %d", w.Code, tc.wantCode)
			}
			got := decodeError(t, w)
			if got.Error != tc.wantError || got.Status != tc.wantStatus {
				t.Fatalf("unexpected body: %+v", got)
			}
			if tc.wantDetail && !strings.Contains(got.Details, "bad tensor") {
				t.Fatalf("expected diagnostic details, got %q", got.Details)
			}
		})
	}
}

func TestPredict_MethodAndCORS(t *testing.T) {
	r := newTestRouter(&service.Service{Prediction: &mockPrediction{ready: true}})

	w := doJSON(t, r, http.MethodOptions, "/predict", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header: %v", w.Header())
	}

	w = doJSON(t, r, http.MethodGet, "/predict", "")
	if w.Code == http.StatusOK {
		t.Fatalf("GET /predict must not succeed")
	}
}

// newForestService builds the real service stack around a forest artifact,
// or around no model at all when forest is empty.
func newForestService(t *testing.T, forest string) *service.Service {
	t.Helper()
	var predictor model.Predictor
	if forest != "" {
		path := filepath.Join(t.TempDir(), "model.json")
		if err := writeFile(path, forest); err != nil {
			t.Fatalf("write artifact: %v", err)
		}
		p, err := model.Load(path)
		if err != nil {
			t.Fatalf("load artifact: %v", err)
		}
		predictor = p
	}
	return service.NewService(predictor, repository.NewRepository(nil), nil)
}

// redForest predicts class 1 (Mature) when R <= 120.
const redForest = `{"classes":[0,1],"n_features":5,"trees":[
  {"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[0,-2,-2],
   "threshold":[120,-2,-2],"value":[[1,1],[0,5],[5,0]]}]}`

func TestPredict_EndToEnd(t *testing.T) {
	r := newTestRouter(newForestService(t, redForest))

	cases := []struct {
		name      string
		body      string
		wantCode  int
		wantLabel string
		wantError string
	}{
		{"mature", `{"R":100,"G":150,"B":50,"temperature":25,"humidity":60}`, http.StatusOK, "Mature", ""},
		{"immature", `{"R":200,"G":150,"B":50,"temperature":25,"humidity":60}`, http.StatusOK, "Immature", ""},
		{"numeric strings", `{"R":"100","G":"150","B":"50","temperature":"25","humidity":"60"}`, http.StatusOK, "Mature", ""},
		{"R out of range", `{"R":300,"G":150,"B":50,"temperature":25,"humidity":60}`, http.StatusBadRequest, "", "R must be between 0 and 255"},
		{"humidity missing", `{"R":100,"G":150,"B":50,"temperature":25}`, http.StatusBadRequest, "", "missing required fields"},
		{"non numeric", `{"R":100,"G":"x","B":50,"temperature":25,"humidity":60}`, http.StatusBadRequest, "", "invalid numeric values"},
		{"temperature out of range", `{"R":100,"G":150,"B":50,"temperature":50,"humidity":60}`, http.StatusBadRequest, "", "temperature must be between 15 and 45"},
		{"no body", ``, http.StatusBadRequest, "", "no data provided"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/predict", tc.body)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d; want %d; body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var resp maize_maturity.PredictResponse
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
				if resp.Prediction != tc.wantLabel || resp.Status != maize_maturity.StatusSuccess {
					t.Fatalf("unexpected response: %+v", resp)
				}
				return
			}
			if got := decodeError(t, w); got.Error != tc.wantError {
				t.Fatalf("error=%q; want %q", got.Error, tc.wantError)
			}
		})
	}
}

func TestPredict_SameRequestSameAnswer(t *testing.T) {
	r := newTestRouter(newForestService(t, redForest))
	body := `{"R":100,"G":150,"B":50,"temperature":25,"humidity":60}`
	first := doJSON(t, r, http.MethodPost, "/predict", body).Body.String()
	second := doJSON(t, r, http.MethodPost, "/predict", body).Body.String()
	if first != second {
		t.Fatalf("responses differ: %s vs %s", first, second)
	}
}

func TestPredict_NotReadySkipsBody(t *testing.T) {
	pred := &mockPrediction{ready: false, err: service.ErrModelUnavailable}
	r := newTestRouter(&service.Service{Prediction: pred})

	w := doJSON(t, r, http.MethodPost, "/predict", `{"R":100,"G":150,"B":50,"temperature":25,"humidity":60}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d; want 503", w.Code)
	}
	if pred.calls != 1 || pred.lastData != nil {
		t.Fatalf("body must not be decoded when not ready: calls=%d data=%v", pred.calls, pred.lastData)
	}
}

func TestDegraded_ServesHomeAndHealth(t *testing.T) {
	r := newTestRouter(newForestService(t, ""))

	if w := doJSON(t, r, http.MethodGet, "/", ""); w.Code != http.StatusOK {
		t.Fatalf("/ status=%d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/health", "")
	var h maize_maturity.HealthResponse
	_ = json.Unmarshal(w.Body.Bytes(), &h)
	if w.Code != http.StatusOK || h.ModelLoaded || h.Status != maize_maturity.StatusUnhealthy {
		t.Fatalf("unexpected health: code=%d body=%+v", w.Code, h)
	}

	for _, body := range []string{``, `{}`, `{"R":100,"G":150,"B":50,"temperature":25,"humidity":60}`, `{"R":999}`} {
		w := doJSON(t, r, http.MethodPost, "/predict", body)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("body %q: status=%d; want 503", body, w.Code)
		}
		if got := decodeError(t, w); got.Status != maize_maturity.StatusUnavailable {
			t.Fatalf("unexpected body: %+v", got)
		}
	}
}
