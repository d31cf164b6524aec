package http

import (
	"encoding/json"
	"net/http"
	"time"

	"parksmart/internal/advisory"
	"parksmart/internal/core"
	"parksmart/internal/fps"
	"parksmart/internal/log"
)

type adviceRequest struct {
	Now        int64                   `json:"now"`
	Candidates []core.CandidateCarpark `json:"candidates"`
}

type adviceResponse struct {
	Signals        []json.RawMessage `json:"signals"`
	Recommendation json.RawMessage   `json:"recommendation"`
}

// handleAdvice evaluates the rate signals for the given instant and
// candidate carparks and picks the highest-priority recommendation.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	var req adviceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	nowMs := req.Now
	if nowMs == 0 {
		nowMs = time.Now().UnixMilli()
	}

	// The cached Free Parking Scheme list supplements whatever membership
	// flags the caller already set.
	if s.store != nil {
		if set := fps.Load(s.store); set.Len() > 0 {
			for i := range req.Candidates {
				if set.Contains(req.Candidates[i].ID) {
					req.Candidates[i].IsFreeSchemeMember = true
				}
			}
		}
	}

	signals := s.classifier.Classify(nowMs, req.Candidates)

	encoded, err := advisory.EncodeAllJSON(signals)
	if err != nil {
		logger.ErrorContext(r.Context(), "Signal encode error", log.FieldError, err)
		InternalServerError("failed to encode signals").Write(w)
		return
	}

	resp := adviceResponse{Signals: encoded, Recommendation: json.RawMessage("null")}
	if selected, ok := advisory.Select(signals); ok {
		raw, err := advisory.EncodeJSON(selected)
		if err != nil {
			logger.ErrorContext(r.Context(), "Signal encode error", log.FieldError, err)
			InternalServerError("failed to encode recommendation").Write(w)
			return
		}
		resp.Recommendation = raw
	}

	NewResponse().JSON(resp).Write(w)
}
