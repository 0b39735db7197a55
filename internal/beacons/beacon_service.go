package beacons

import (
	"context"
	"net/url"
	"time"

	"hit-analytics/internal/aggregators"
	"hit-analytics/internal/classifiers"
	"hit-analytics/internal/models"
	"hit-analytics/internal/sessions"
	"hit-analytics/internal/shared/loggers"
	"hit-analytics/internal/shared/metrics"
	"hit-analytics/internal/shared/svcerrors"
)

// BeaconService runs the ingestion pipeline for one beacon:
// parse -> classify -> fingerprint -> aggregate. The returned error is for
// internal observability only; callers must still answer the client as if
// the hit succeeded.
//
//go:generate mockgen -source=beacon_service.go -destination=./mocks/beacon_service_mock.go -package=mocks
type BeaconService interface {
	Record(ctx context.Context, siteID string, params url.Values, derived Derived, meta models.RequestMeta) (models.Disposition, error)
}

type beaconService struct {
	parser        Parser
	classifier    classifiers.Classifier
	fingerprinter sessions.Fingerprinter
	engine        aggregators.Engine
	defaults      SiteDefaults
	now           func() time.Time
}

func NewBeaconService(
	parser Parser,
	classifier classifiers.Classifier,
	fingerprinter sessions.Fingerprinter,
	engine aggregators.Engine,
	defaults SiteDefaults,
) BeaconService {
	return &beaconService{
		parser:        parser,
		classifier:    classifier,
		fingerprinter: fingerprinter,
		engine:        engine,
		defaults:      defaults,
		now:           time.Now,
	}
}

func (s *beaconService) Record(ctx context.Context, siteID string, params url.Values, derived Derived, meta models.RequestMeta) (models.Disposition, error) {
	logger := loggers.Ctx(ctx)

	hit, err := s.parser.Parse(siteID, params, derived, s.defaults, s.now())
	if err != nil {
		code := ""
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		metricHitsRecordedTotal.WithLabelValues("", code).Inc()
		return "", err
	}

	// Fingerprint first: the classifier needs it for duplicate detection,
	// and nothing downstream of this call sees the raw address or UA.
	fp := s.fingerprinter.Fingerprint(hit.SiteID, meta.RemoteAddr, meta.UserAgent, hit.Timestamp)

	disposition := s.classifier.Classify(hit, meta, fp)
	if disposition == models.DispositionAccepted {
		s.engine.Ingest(hit, fp)
	}

	logger.Debug().
		Str(loggers.FieldSiteID, hit.SiteID).
		Str(loggers.FieldPath, hit.Path).
		Str(loggers.FieldDisposition, disposition.String()).
		Msg("beacon recorded")

	metricHitsRecordedTotal.WithLabelValues(disposition.String(), metrics.ValueNoError).Inc()
	return disposition, nil
}
