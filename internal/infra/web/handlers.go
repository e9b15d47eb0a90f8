package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/recommend"
	"gifticon-keeper/internal/infra/metrics"
	"gifticon-keeper/internal/usecase"
)

// ===== DTOs =====

type gifticonRequest struct {
	Brand      string `json:"brand"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD, empty means never expires
	Source     string `json:"source"`      // manual|scan, defaults to manual
}

type expiryStatusResponse struct {
	DaysRemaining *int   `json:"days_remaining"` // null when the voucher never expires
	Severity      int    `json:"severity"`
	Label         string `json:"label"`
}

type gifticonResponse struct {
	ID           string               `json:"id"`
	Brand        string               `json:"brand"`
	Name         string               `json:"name"`
	Category     string               `json:"category"`
	ExpiryDate   *string              `json:"expiry_date"` // null when never expires
	Used         bool                 `json:"used"`
	RegisteredAt time.Time            `json:"registered_at"`
	Status       expiryStatusResponse `json:"status"`
}

type recommendationContextResponse struct {
	TimeOfDay    string   `json:"time_of_day"`
	Season       string   `json:"season"`
	IsWeekend    bool     `json:"is_weekend"`
	IsSpecialDay bool     `json:"is_special_day"`
	Weather      string   `json:"weather,omitempty"`
	ActiveEvents []string `json:"active_events,omitempty"`
	Mood         string   `json:"mood,omitempty"`
}

type recommendationResponse struct {
	ID           string                        `json:"id"`
	Family       string                        `json:"family"`
	Title        string                        `json:"title"`
	Message      string                        `json:"message"`
	Priority     string                        `json:"priority"`
	Gifticons    []gifticonResponse            `json:"gifticons"`
	Context      recommendationContextResponse `json:"context"`
	CreatedAt    time.Time                     `json:"created_at"`
	DismissToken string                        `json:"dismiss_token"`
}

type scanResponse struct {
	Brand      string  `json:"brand"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	ExpiryDate *string `json:"expiry_date"`
}

func (s *Server) gifticonDTO(g *model.Gifticon) gifticonResponse {
	st := s.gifUC.Status(g)
	resp := gifticonResponse{
		ID:           g.ID,
		Brand:        g.Brand,
		Name:         g.Name,
		Category:     string(g.Category),
		Used:         g.Used,
		RegisteredAt: g.RegisteredAt,
		Status: expiryStatusResponse{
			Severity: int(st.Severity),
			Label:    st.Label,
		},
	}
	if st.Finite {
		d := st.DaysRemaining
		resp.Status.DaysRemaining = &d
	}
	if g.ExpiresAt != nil {
		formatted := g.ExpiresAt.Format("2006-01-02")
		resp.ExpiryDate = &formatted
	}
	return resp
}

func (s *Server) gifticonDTOs(gs []*model.Gifticon) []gifticonResponse {
	out := make([]gifticonResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, s.gifticonDTO(g))
	}
	return out
}

// ===== error mapping =====

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrAlreadyUsed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotOwner):
		// Another user's voucher answers like a missing one.
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrRateLimited):
		http.Error(w, "too many scan requests", http.StatusTooManyRequests)
	case errors.Is(err, domain.ErrScanUnavailable):
		http.Error(w, "scan provider unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ===== session =====

type sessionRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	token, err := s.auth.Mint(w, strings.TrimSpace(req.UserID))
	if err != nil {
		http.Error(w, "Failed to mint session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// ===== gifticons =====

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req gifticonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	g, err := s.gifUC.Register(r.Context(), userID(r), req.Brand, req.Name, req.Category, req.ExpiryDate)
	if err != nil {
		writeError(w, err)
		return
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}
	metrics.IncGifticonRegistered(source)
	writeJSON(w, http.StatusCreated, s.gifticonDTO(g))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	gs, err := s.gifUC.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []gifticonResponse `json:"data"`
	}{Data: s.gifticonDTOs(gs)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := s.gifUC.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.gifticonDTO(g))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req gifticonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	g, err := s.gifUC.Update(r.Context(), userID(r), chi.URLParam(r, "id"), req.Brand, req.Name, req.Category, req.ExpiryDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.gifticonDTO(g))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.gifUC.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleUsed(w http.ResponseWriter, r *http.Request) {
	g, err := s.gifUC.ToggleUsed(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.gifticonDTO(g))
}

func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	gs, err := s.gifUC.ListExpiring(r.Context(), userID(r), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []gifticonResponse `json:"data"`
	}{Data: s.gifticonDTOs(gs)})
}

func (s *Server) handleBrandStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.gifUC.BrandStats(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	type brandStat struct {
		Total        int `json:"total"`
		Unused       int `json:"unused"`
		ExpiringSoon int `json:"expiring_soon"`
	}
	out := make(map[string]brandStat, len(stats))
	for brand, st := range stats {
		out[brand] = brandStat{Total: st.Total, Unused: st.Unused, ExpiringSoon: st.ExpiringSoon}
	}
	writeJSON(w, http.StatusOK, struct {
		Brands map[string]brandStat `json:"brands"`
	}{Brands: out})
}

// ===== settings =====

type settingsPayload struct {
	ExpiryThresholdDays int `json:"expiry_threshold_days"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.gifUC.Settings(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{ExpiryThresholdDays: st.ExpiryThresholdDays})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	st, err := s.gifUC.UpdateSettings(r.Context(), userID(r), req.ExpiryThresholdDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{ExpiryThresholdDays: st.ExpiryThresholdDays})
}

// ===== recommendation =====

// parseSignals reads the optional situational query parameters. Values
// outside the known vocabularies are passed through; they match no rule and
// therefore behave as absent.
func parseSignals(r *http.Request) recommend.Signals {
	q := r.URL.Query()
	sig := recommend.Signals{
		Weather: model.Weather(strings.ToLower(strings.TrimSpace(q.Get("weather")))),
		Mood:    model.Mood(strings.ToLower(strings.TrimSpace(q.Get("mood")))),
	}
	if raw := q.Get("events"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
				sig.Events = append(sig.Events, model.Event(e))
			}
		}
	}
	return sig
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recUC.Generate(r.Context(), userID(r), parseSignals(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if rec == nil {
		// Nothing to suggest right now.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	events := make([]string, 0, len(rec.Context.ActiveEvents))
	for _, e := range rec.Context.ActiveEvents {
		events = append(events, string(e))
	}
	writeJSON(w, http.StatusOK, recommendationResponse{
		ID:        rec.ID,
		Family:    string(rec.Family),
		Title:     rec.Title,
		Message:   rec.Message,
		Priority:  string(rec.Priority),
		Gifticons: s.gifticonDTOs(rec.Gifticons),
		Context: recommendationContextResponse{
			TimeOfDay:    string(rec.Context.TimeOfDay),
			Season:       string(rec.Context.Season),
			IsWeekend:    rec.Context.IsWeekend,
			IsSpecialDay: rec.Context.IsSpecialDay,
			Weather:      string(rec.Context.Weather),
			ActiveEvents: events,
			Mood:         string(rec.Context.Mood),
		},
		CreatedAt:    rec.CreatedAt,
		DismissToken: usecase.Fingerprint(rec),
	})
}

type dismissRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.recUC.Dismiss(r.Context(), userID(r), req.Token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== scan =====

type scanRequest struct {
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.scanUC == nil {
		http.Error(w, "scan is not configured", http.StatusNotImplemented)
		return
	}
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := s.scanUC.Scan(r.Context(), userID(r), req.ImageBase64)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := scanResponse{Brand: res.Brand, Name: res.Name, Category: res.Category}
	if res.ExpiresAt != nil {
		formatted := res.ExpiresAt.Format("2006-01-02")
		resp.ExpiryDate = &formatted
	}
	writeJSON(w, http.StatusOK, resp)
}
