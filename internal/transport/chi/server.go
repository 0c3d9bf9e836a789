package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/poi"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/search/result"
	"github.com/kailas-cloud/nearby/internal/logger"
	datasetuc "github.com/kailas-cloud/nearby/internal/usecase/dataset"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the location search API.
type Server struct {
	search        *searchuc.Service
	dataset       *datasetuc.Validator
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	dataset *datasetuc.Validator,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		dataset: dataset,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, verbatim),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, verbatim),
		sentinelHandler(domain.ErrStore, http.StatusInternalServerError, fixed(searchuc.MessageTryAgain)),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/locations/search", s.SearchLocations)
		r.Get("/locations/nearest", s.NearestLocations)
		r.Get("/postal-codes/{code}", s.GetPostalCode)
		r.Get("/stats", s.Stats)
	})
}

type searchRequest struct {
	PostalCode string `json:"postalCode"`
	Limit      *int   `json:"limit,omitempty"`
}

// SearchLocations handles POST /api/v1/locations/search.
func (s *Server) SearchLocations(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSearch(w, r, req)
}

// NearestLocations handles GET /api/v1/locations/nearest?postalCode=&limit=.
func (s *Server) NearestLocations(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "postalCode", query, &req.PostalCode); err != nil {
		writeError(w, http.StatusBadRequest, "postalCode: query parameter is required")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &req.Limit); err != nil {
		writeError(w, http.StatusBadRequest, "limit: must be an integer")
		return
	}
	s.respondSearch(w, r, req)
}

func (s *Server) respondSearch(w http.ResponseWriter, r *http.Request, req searchRequest) {
	r = r.WithContext(logger.With(r.Context(), zap.String("postal_code", req.PostalCode)))
	resp, err := s.search.Search(r.Context(), req.PostalCode, req.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]locationDTO, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToDTO(&resp.Results[i])
	}
	writeSuccess(w, searchDataDTO{
		Origin:    postalCodeToDTO(resp.Origin),
		Count:     len(items),
		Locations: items,
	}, resp.Message)
}

// GetPostalCode handles GET /api/v1/postal-codes/{code}.
func (s *Server) GetPostalCode(w http.ResponseWriter, r *http.Request) {
	pc, err := s.search.PostalCode(r.Context(), gochi.URLParam(r, "code"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, postalCodeToDTO(pc), "")
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.dataset.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, statsDTO{
		PostalCodes:     st.PostalCodes,
		Locations:       st.Locations,
		ActiveLocations: st.ActiveLocations,
	}, "")
}

// HealthCheck handles GET /health. Only an unreachable database yields 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthDTO{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.String("kind", string(domain.KindOf(err))), zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message func(error) string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message(err))
		return true
	}
}

// verbatim surfaces the typed error text. Only used for validation and not-found
// errors, whose messages carry no internals.
func verbatim(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return err.Error()
}

func fixed(msg string) func(error) string {
	return func(error) string { return msg }
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type searchDataDTO struct {
	Origin    postalCodeDTO `json:"origin"`
	Count     int           `json:"count"`
	Locations []locationDTO `json:"locations"`
}

type locationDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Region        string  `json:"region"`
	PostalCode    string  `json:"postalCode"`
	Phone         *string `json:"phone,omitempty"`
	Hours         *string `json:"hours,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceMiles float64 `json:"distanceMiles"`
}

type postalCodeDTO struct {
	Code      string  `json:"code"`
	City      *string `json:"city,omitempty"`
	Region    *string `json:"region,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type statsDTO struct {
	PostalCodes     int `json:"postalCodes"`
	Locations       int `json:"locations"`
	ActiveLocations int `json:"activeLocations"`
}

type healthDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func resultToDTO(r *result.Result) locationDTO {
	loc := r.Location()
	dto := locationToDTO(loc)
	dto.DistanceMiles = r.DistanceMiles()
	return dto
}

func locationToDTO(p poi.PointOfInterest) locationDTO {
	return locationDTO{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		City:       p.City,
		Region:     p.Region,
		PostalCode: p.PostalCode,
		Phone:      p.Phone,
		Hours:      p.Hours,
		Latitude:   p.Point.Latitude,
		Longitude:  p.Point.Longitude,
	}
}

func postalCodeToDTO(pc postalcode.PostalCode) postalCodeDTO {
	return postalCodeDTO{
		Code:      pc.Code,
		City:      pc.City,
		Region:    pc.Region,
		Latitude:  pc.Point.Latitude,
		Longitude: pc.Point.Longitude,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}
