package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// ============================================================================
// API Response Types
// ============================================================================

// APIResponse wraps all API responses with success/error info.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TokenizeRequest is the body of POST /api/tokenize.
type TokenizeRequest struct {
	SQL string `json:"sql"`
	// Strict forces the strict policy; nil uses the server default.
	Strict *bool `json:"strict,omitempty"`
	// Normalize lower-cases the statement before lexing; nil means true.
	Normalize *bool `json:"normalize,omitempty"`
}

// TokenInfo is the JSON form of a token.
type TokenInfo struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	// ValidName is set for identifiers only.
	ValidName *bool `json:"valid_name,omitempty"`
}

// TokenizeResponse lists the tokens of a statement.
type TokenizeResponse struct {
	Tokens []TokenInfo `json:"tokens"`
	Count  int         `json:"count"`
	Policy string      `json:"policy"`
}

// LexErrorResponse describes a lexical failure.
type LexErrorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Position int    `json:"position"`
	Hint     string `json:"hint,omitempty"`
}

// ============================================================================
// Helper Functions
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

func tokenInfo(tok lexer.Token) TokenInfo {
	info := TokenInfo{Type: tok.Type.String()}
	if tok.Type == lexer.TokenIdent {
		valid := IsValidName(tok.Text)
		info.Text = tok.Text
		info.ValidName = &valid
	}
	return info
}

// statementPairs prepares sql for the lexer. Runes keep their byte offsets
// in sql, so error positions point into the text the client sent even
// when lower-casing changes a rune's width. A statement without a
// terminator gets one at the end so its last word is not dropped.
func statementPairs(sql string, normalize bool) []lexer.Pair {
	pairs := make([]lexer.Pair, 0, len(sql)+1)
	terminated := false
	for off, ch := range sql {
		if normalize {
			ch = unicode.ToLower(ch)
		}
		if ch == ';' {
			terminated = true
		}
		pairs = append(pairs, lexer.Pair{Pos: off, Ch: ch})
	}
	if !terminated {
		pairs = append(pairs, lexer.Pair{Pos: len(sql), Ch: ';'})
	}
	return pairs
}

// ============================================================================
// API Handlers
// ============================================================================

// handleAPITokenize tokenizes a statement.
// POST /api/tokenize
func (s *Server) handleAPITokenize(w http.ResponseWriter, r *http.Request) {
	var req TokenizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 2*MaxStatementBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := ValidateTokenizeRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy := GetPolicy(r)
	if req.Strict != nil {
		policy = lexer.Permissive
		if *req.Strict {
			policy = lexer.Strict
		}
	}

	normalize := req.Normalize == nil || *req.Normalize

	log := s.log.With("request_id", middleware.GetReqID(r.Context()))
	stream := lexer.FromPairs(statementPairs(req.SQL, normalize))
	tokens, err := lexer.New(stream, lexer.WithPolicy(policy), lexer.WithLogger(log)).Tokenize()
	if err != nil {
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		log.Info("tokenize rejected", "pos", lexErr.Pos, "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, LexErrorResponse{
			Error:    err.Error(),
			Position: lexErr.Pos,
			Hint:     GetErrorHint(err),
		})
		return
	}

	resp := TokenizeResponse{
		Tokens: make([]TokenInfo, len(tokens)),
		Count:  len(tokens),
		Policy: policy.String(),
	}
	for i, tok := range tokens {
		resp.Tokens[i] = tokenInfo(tok)
	}
	writeSuccess(w, resp)
}
