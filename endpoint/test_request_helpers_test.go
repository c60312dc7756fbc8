package endpoint

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type requestSpec struct {
	method      string
	requestPath string
	body        interface{}
}

type apiResp struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func performRequest(r *gin.Engine, spec requestSpec) *httptest.ResponseRecorder {
	var reader *strings.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	default:
		b, _ := json.Marshal(spec.body)
		reader = strings.NewReader(string(b))
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.requestPath, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doJSON performs the request and decodes the response envelope.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, apiResp) {
	t.Helper()
	w := performRequest(r, requestSpec{method: method, requestPath: path, body: body})
	var resp apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

func decodeData(t *testing.T, resp apiResp) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data), "data: %s", string(resp.Data))
	return data
}

// decodeList returns the records stored under key in a list response.
func decodeList(t *testing.T, resp apiResp, key string) []map[string]interface{} {
	t.Helper()
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(data[key], &items))
	return items
}

// fieldErrors returns the per-field messages of a validation failure.
func fieldErrors(t *testing.T, resp apiResp) map[string]interface{} {
	t.Helper()
	data := decodeData(t, resp)
	fields, ok := data["fields"].(map[string]interface{})
	require.True(t, ok, "expected field errors in %s", string(resp.Data))
	return fields
}
