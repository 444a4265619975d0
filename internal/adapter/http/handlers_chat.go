package adapthttp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dietcoach/internal/domain"
)

const maxChatBody = 64 << 10

// handleChat receives one chat message and returns the coach's reply.
// With a channel secret configured, the body must carry a valid
// X-Signature header (Base64 of HMAC-SHA256 over the raw body).
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if s.channelSecret != "" && !validSignature(s.channelSecret, body, r.Header.Get("X-Signature")) {
		writeError(w, http.StatusBadRequest, errors.New("invalid signature"))
		return
	}

	var req struct {
		UserID string `json:"userId"`
		Text   string `json:"text"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, errors.New("userId is required"))
		return
	}

	reply, err := s.coach.Handle(r.Context(), req.UserID, req.Text)
	if err != nil {
		var unavailable *domain.StoreUnavailableError
		if errors.As(err, &unavailable) {
			// Transient; the transport's retry policy takes it from here.
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"reply": "Something went wrong on our side. Please try again in a moment.",
				"error": unavailable.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

func validSignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
