package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/postalcode"
	"github.com/kailas-cloud/nearby/internal/domain/rules"
	"github.com/kailas-cloud/nearby/internal/domain/search/request"
	"github.com/kailas-cloud/nearby/internal/domain/search/result"
	"github.com/kailas-cloud/nearby/internal/logger"
)

// MessageTryAgain is the user-facing text for a search aborted by a store failure.
const MessageTryAgain = "Search is temporarily unavailable, please try again"

// Outcome labels reported to the Recorder.
const (
	OutcomeOK         = "ok"
	OutcomeEmpty      = "empty"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeStore      = "store"
	OutcomeInternal   = "internal"
)

// Response is a successful search: the resolved origin, ranked results and a summary line.
type Response struct {
	Origin  postalcode.PostalCode
	Results []result.Result
	Message string
}

// Service answers "which N locations are closest to this postal code".
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	codes     PostalCodeReader
	locations LocationReader
	limits    request.Limits
	recorder  Recorder
}

// New creates a search service with default limits and no metrics.
func New(codes PostalCodeReader, locations LocationReader) *Service {
	return &Service{
		codes:     codes,
		locations: locations,
		limits:    request.DefaultLimits(),
		recorder:  nopRecorder{},
	}
}

// WithLimits configures the default and maximum result count.
func (s *Service) WithLimits(l request.Limits) *Service {
	s.limits = l
	return s
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Search validates the query, resolves the origin, ranks active locations and
// shapes the response. A nil limit takes the configured default.
func (s *Service) Search(ctx context.Context, postalCode string, limit *int) (Response, error) {
	req, err := request.New(postalCode, limit, s.limits)
	if err != nil {
		s.recorder.ObserveSearch(OutcomeValidation, -1)
		return Response{}, err
	}

	origin, err := s.resolve(ctx, req.LookupKeys())
	if err != nil {
		s.recorder.ObserveSearch(outcomeOf(err), -1)
		return Response{}, err
	}

	candidates, err := s.locations.ListActive(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("list active locations failed", zap.Error(err))
		s.recorder.ObserveSearch(outcomeOf(err), -1)
		return Response{}, fmt.Errorf("list active locations: %w", err)
	}

	results := Rank(origin.Point, candidates, req.Limit())

	resp := Response{Origin: origin, Results: results}
	if len(results) == 0 {
		resp.Message = fmt.Sprintf("No active locations found near %s", describe(req.PostalCode(), origin))
		s.recorder.ObserveSearch(OutcomeEmpty, len(candidates))
		return resp, nil
	}

	resp.Message = fmt.Sprintf("Found %d %s near %s",
		len(results), plural(len(results), "location", "locations"), describe(req.PostalCode(), origin))
	s.recorder.ObserveSearch(OutcomeOK, len(candidates))
	return resp, nil
}

// PostalCode returns a stored postal code. A ZIP+4 not stored as such
// resolves by its 5-digit ZIP.
func (s *Service) PostalCode(ctx context.Context, code string) (postalcode.PostalCode, error) {
	code = rules.NormalizePostalCode(code)
	if !rules.IsValidPostalCode(code) {
		return postalcode.PostalCode{}, domain.NewValidationError("postalCode", rules.PostalCodeMessage(code))
	}
	return s.resolve(ctx, rules.PostalCodeLookupKeys(code))
}

// resolve returns the first stored postal code among keys.
func (s *Service) resolve(ctx context.Context, keys []string) (postalcode.PostalCode, error) {
	for _, key := range keys {
		origin, found, err := s.codes.Get(ctx, key)
		if err != nil {
			logger.FromContext(ctx).Error("postal code lookup failed", zap.String("code", key), zap.Error(err))
			return postalcode.PostalCode{}, fmt.Errorf("resolve origin: %w", err)
		}
		if found {
			return origin, nil
		}
	}
	return postalcode.PostalCode{}, domain.NewNotFound("postal code", keys[0])
}

// describe renders "10001 (New York, NY)" or just the code when no place is known.
func describe(code string, origin postalcode.PostalCode) string {
	if place := origin.Place(); place != "" {
		return fmt.Sprintf("%s (%s)", code, place)
	}
	return code
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func outcomeOf(err error) string {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return OutcomeValidation
	case domain.KindNotFound:
		return OutcomeNotFound
	case domain.KindStore:
		return OutcomeStore
	default:
		return OutcomeInternal
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, int) {}
