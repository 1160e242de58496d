package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/masklab/snowmask/internal/metrics"
)

// One shared instrument set; promauto registers globally and would
// panic on a second registration.
var testMetrics = metrics.New("snowmask_test")

func doJSON(t *testing.T, h *MaskHandler, body string) (int, maskResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/mask", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.MaskJSON(rec, req)

	var resp maskResponse
	if rec.Code == http.StatusOK {
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec.Code, resp
}

func TestMaskJSON(t *testing.T) {
	h := NewMaskHandler(Config{Metrics: testMetrics})

	code, resp := doJSON(t, h, `{"value":"123-45-6789","category":"ssn","level":"medium"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "XXX-XX-6789", resp.Masked)
	assert.Equal(t, "ssn", resp.Category)
	assert.Equal(t, "medium", resp.Level)
	assert.False(t, resp.Passthrough)
}

func TestMaskJSONDefaults(t *testing.T) {
	h := NewMaskHandler(Config{})

	code, resp := doJSON(t, h, `{"value":"john.doe@example.com"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "j*******@e******.com", resp.Masked)
	assert.Equal(t, "email", resp.Category)
	assert.Equal(t, "medium", resp.Level)
}

func TestMaskJSONUnknownCategoryPassesThrough(t *testing.T) {
	h := NewMaskHandler(Config{})

	code, resp := doJSON(t, h, `{"value":"some value","category":"unknown_type"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "some value", resp.Masked)
	assert.Equal(t, "unknown", resp.Category)
	assert.True(t, resp.Passthrough)
}

func TestMaskJSONInvalidBody(t *testing.T) {
	h := NewMaskHandler(Config{})

	code, _ := doJSON(t, h, `{"value":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMaskQuery(t *testing.T) {
	h := NewMaskHandler(Config{})

	query := url.Values{}
	query.Set("value", "4111-1111-1111-1111")
	query.Set("category", "credit_card")
	query.Set("level", "low")
	req := httptest.NewRequest(http.MethodGet, "/v1/mask?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	h.MaskQuery(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp maskResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "4111-XXXX-XXXX-1111", resp.Masked)
	assert.Equal(t, "credit_card", resp.Category)
	assert.Equal(t, "low", resp.Level)
}

func TestMaskQueryEmptyValue(t *testing.T) {
	h := NewMaskHandler(Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/mask?category=phone", nil)
	rec := httptest.NewRecorder()
	h.MaskQuery(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp maskResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "", resp.Masked)
	assert.True(t, resp.Passthrough)
}
