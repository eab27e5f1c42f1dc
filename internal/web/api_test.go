package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// postTokenize sends body to /api/tokenize and returns the recorder.
func postTokenize(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/tokenize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeTokens(t *testing.T, rec *httptest.ResponseRecorder) TokenizeResponse {
	t.Helper()

	var apiResp struct {
		Success bool             `json:"success"`
		Data    TokenizeResponse `json:"data"`
		Error   string           `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiResp))
	require.True(t, apiResp.Success, "error: %s", apiResp.Error)
	return apiResp.Data
}

func TestAPITokenize(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	rec := postTokenize(t, srv, `{"sql": "SELECT first_col, second_col FROM schema.table;"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	data := decodeTokens(t, rec)
	assert.Equal(t, 6, data.Count)
	assert.Equal(t, "permissive", data.Policy)

	types := make([]string, len(data.Tokens))
	for i, tok := range data.Tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []string{"SELECT", "IDENT", "COMMA", "IDENT", "FROM", "IDENT"}, types)
	assert.Equal(t, "first_col", data.Tokens[1].Text)
	assert.Equal(t, "schema.table", data.Tokens[5].Text)
	require.NotNil(t, data.Tokens[5].ValidName)
	assert.True(t, *data.Tokens[5].ValidName)
	assert.Nil(t, data.Tokens[0].ValidName)
}

func TestAPITokenizeWithoutNormalize(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	rec := postTokenize(t, srv, `{"sql": "SELECT * FROM t;", "normalize": false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeTokens(t, rec)
	require.Len(t, data.Tokens, 4)
	assert.Equal(t, "IDENT", data.Tokens[0].Type)
	assert.Equal(t, "SELECT", data.Tokens[0].Text)
}

func TestAPITokenizeEmptyIdentifierPermissive(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	rec := postTokenize(t, srv, `{"sql": "select a,,b from t;"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeTokens(t, rec)
	require.Len(t, data.Tokens, 8)
	assert.Equal(t, "IDENT", data.Tokens[3].Type)
	assert.Equal(t, "", data.Tokens[3].Text)
	require.NotNil(t, data.Tokens[3].ValidName)
	assert.False(t, *data.Tokens[3].ValidName)
}

func TestAPITokenizeStrictRequest(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	rec := postTokenize(t, srv, `{"sql": "select a,,b from t;", "strict": true}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp LexErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 9, resp.Position)
	assert.Contains(t, resp.Error, "invalid token")
	assert.NotEmpty(t, resp.Hint)
}

func TestAPITokenizeServerDefaultStrict(t *testing.T) {
	srv := NewServer(0, lexer.Strict)

	rec := postTokenize(t, srv, `{"sql": ", a;"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// A request can opt out of the server default.
	rec = postTokenize(t, srv, `{"sql": ", a;", "strict": false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeTokens(t, rec)
	assert.Equal(t, "permissive", data.Policy)
	assert.Equal(t, 3, data.Count)
}

func TestAPITokenizeBadRequests(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"sql": `, "invalid JSON body"},
		{"missing sql", `{}`, "sql field is required"},
		{"blank sql", `{"sql": "   "}`, "sql field is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTokenize(t, srv, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var apiResp APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiResp))
			assert.False(t, apiResp.Success)
			assert.Equal(t, tt.want, apiResp.Error)
		})
	}
}

func TestAPITokenizeTooLarge(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	body, err := json.Marshal(TokenizeRequest{SQL: strings.Repeat("a", MaxStatementBytes+1)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/tokenize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPITokenizeSuppliesTerminator(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	rec := postTokenize(t, srv, `{"sql": "select a from t"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeTokens(t, rec)
	require.Equal(t, 4, data.Count)
	assert.Equal(t, "IDENT", data.Tokens[3].Type)
	assert.Equal(t, "t", data.Tokens[3].Text)
}

func TestAPITokenizePositionInOriginalText(t *testing.T) {
	srv := NewServer(0, lexer.Permissive)

	// U+0130 is two bytes wide; the error offset must still count the
	// bytes of the statement as sent.
	rec := postTokenize(t, srv, `{"sql": "SELECT İ,,b;", "strict": true}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp LexErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 10, resp.Position)
}

func TestStatementPairs(t *testing.T) {
	pairs := statementPairs("SELECT İ", true)

	require.Len(t, pairs, 9)
	assert.Equal(t, lexer.Pair{Pos: 0, Ch: 's'}, pairs[0])
	assert.Equal(t, lexer.Pair{Pos: 7, Ch: 'i'}, pairs[7])
	assert.Equal(t, lexer.Pair{Pos: 9, Ch: ';'}, pairs[8])

	pairs = statementPairs("A;B", false)
	assert.Equal(t, []lexer.Pair{{Pos: 0, Ch: 'A'}, {Pos: 1, Ch: ';'}, {Pos: 2, Ch: 'B'}}, pairs)
}
