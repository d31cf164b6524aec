package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"parksmart/internal/core"
	"parksmart/internal/log"
)

const maxBodyBytes = 1 << 20

type spendRequest struct {
	CarparkName   string  `json:"carparkName"`
	CarparkID     string  `json:"carparkId"`
	Agency        string  `json:"agency"`
	Cost          float64 `json:"cost"`
	DurationHours float64 `json:"durationHours"`
	ParkedAt      int64   `json:"parkedAt"`
	EndedAt       int64   `json:"endedAt"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func (s *Server) handleLogSpend(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	var req spendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	rec := core.SpendRecord{
		CarparkName:   req.CarparkName,
		CarparkID:     req.CarparkID,
		Agency:        req.Agency,
		Cost:          req.Cost,
		DurationHours: req.DurationHours,
		ParkedAt:      req.ParkedAt,
		EndedAt:       req.EndedAt,
		Lat:           req.Lat,
		Lng:           req.Lng,
	}
	if err := rec.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	entry, err := s.spends.Log(r.Context(), rec)
	if err != nil {
		logger.ErrorContext(r.Context(), "Spend log error", log.FieldError, err)
		InternalServerError("failed to save spend record").Write(w)
		return
	}

	NewResponse().Status(http.StatusCreated).JSON(entry).Write(w)
}

func (s *Server) handleListSpend(w http.ResponseWriter, r *http.Request) {
	records := s.ledger.Records()
	if records == nil {
		records = []core.SpendRecord{}
	}
	NewResponse().JSON(records).Write(w)
}

func (s *Server) handleDeleteSpend(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		BadRequestError("missing spend id").Write(w)
		return
	}

	if err := s.spends.Delete(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Spend delete error", log.FieldError, err, log.FieldSpendID, id)
		InternalServerError("failed to delete spend record").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSpend(w http.ResponseWriter, r *http.Request) {
	if err := s.spends.Clear(r.Context()); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Spend clear error", log.FieldError, err)
		InternalServerError("failed to clear spend log").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// monthQuery resolves the year/month query parameters, defaulting to the
// current month in Singapore time.
func monthQuery(r *http.Request) (year, month int, err error) {
	now := time.Now().In(core.SGT)
	year = now.Year()
	month = int(now.Month())
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, convErr := strconv.Atoi(v); convErr == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, convErr := strconv.Atoi(v); convErr == nil {
			month = m
		}
	}
	if month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	return year, month, nil
}

func (s *Server) handleMonthlyTotal(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthQuery(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := strconv.Itoa(year) + "-" + strconv.Itoa(month)
	total, found := s.monthlyCache.Get(key)
	if !found {
		total = s.ledger.MonthlyTotal(year, time.Month(month))
		s.monthlyCache.Set(key, total)
	}

	NewResponse().JSON(struct {
		Year  int     `json:"year"`
		Month int     `json:"month"`
		Total float64 `json:"total"`
	}{Year: year, Month: month, Total: total}).Write(w)
}

func (s *Server) handleMonthEntries(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthQuery(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	entries := s.ledger.MonthEntries(year, time.Month(month))
	if entries == nil {
		entries = []core.SpendRecord{}
	}
	NewResponse().JSON(entries).Write(w)
}

func (s *Server) handleWeeklyTotals(w http.ResponseWriter, r *http.Request) {
	weeks := 8
	if v := strings.TrimSpace(r.URL.Query().Get("weeks")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			weeks = n
		}
	}
	if weeks < 1 || weeks > 52 {
		BadRequestError("weeks must be between 1 and 52").Write(w)
		return
	}

	// Never cached: the rolling windows are anchored to the query time, so
	// a cached result computed for an earlier "now" can bucket records near
	// a window boundary wrongly.
	NewResponse().JSON(s.ledger.WeeklyTotals(weeks)).Write(w)
}

func (s *Server) handleTopCarparks(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit < 1 || limit > 100 {
		BadRequestError("limit must be between 1 and 100").Write(w)
		return
	}

	key := "limit:" + strconv.Itoa(limit)
	top, found := s.topCache.Get(key)
	if !found {
		top = s.ledger.TopCarparks(limit)
		s.topCache.Set(key, top)
	}
	if top == nil {
		top = []core.CarparkSpend{}
	}

	NewResponse().JSON(top).Write(w)
}
