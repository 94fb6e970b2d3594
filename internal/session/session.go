package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
	"github.com/saturnino-fabrica-de-software/presente/internal/match"
	"github.com/saturnino-fabrica-de-software/presente/internal/provider"
)

type MatchEngineInterface interface {
	Query(embedding []float64, distanceThreshold float64) (*domain.MatchResult, error)
}

type AttendanceLedgerInterface interface {
	TryRecord(ctx context.Context, identity domain.Identity, confidence float64, source string, now time.Time) (bool, error)
}

type AuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.RecognitionAudit) error
}

// Session coordinates one continuous recognition run: frames in, decisions
// out. It keeps a run-local set of identity ids it already settled with
// the ledger, so one person standing in front of the camera does not turn
// into a ledger round-trip per frame. The set is transient; the ledger's
// daily uniqueness constraint remains the source of truth across runs.
type Session struct {
	engine   MatchEngineInterface
	ledger   AttendanceLedgerInterface
	audits   AuditRepositoryInterface
	provider provider.FaceProvider
	logger   *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// New creates a session. audits may be nil to disable query auditing.
func New(
	engine MatchEngineInterface,
	ledger AttendanceLedgerInterface,
	audits AuditRepositoryInterface,
	faceProvider provider.FaceProvider,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		engine:   engine,
		ledger:   ledger,
		audits:   audits,
		provider: faceProvider,
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Reset discards the run-local dedup set, starting a new run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}

// ProcessEmbedding resolves one face embedding to an attendance decision.
// confidenceThresholdPct is the caller-facing percentage; it is converted
// to the raw distance bound the engine consumes. The run-local set is only
// marked after the ledger call succeeds, so a storage failure never
// silently swallows an attendance event.
func (s *Session) ProcessEmbedding(ctx context.Context, embedding []float64, confidenceThresholdPct float64, source string, now time.Time) (*domain.FaceDecision, error) {
	if confidenceThresholdPct < 0 || confidenceThresholdPct > 100 {
		return nil, domain.ErrInvalidThreshold
	}

	result, err := s.engine.Query(embedding, match.DistanceThreshold(confidenceThresholdPct))
	if err != nil {
		return nil, fmt.Errorf("query gallery: %w", err)
	}

	s.audit(ctx, embedding, result, confidenceThresholdPct, source)

	if !result.Accepted() || result.Confidence < confidenceThresholdPct {
		return &domain.FaceDecision{
			Outcome:    domain.OutcomeUnknown,
			Confidence: result.Confidence,
		}, nil
	}

	identity := *result.Identity

	s.mu.Lock()
	_, dup := s.seen[identity.ID]
	s.mu.Unlock()
	if dup {
		return &domain.FaceDecision{
			Outcome:    domain.OutcomeDuplicateSession,
			Identity:   &identity,
			Confidence: result.Confidence,
		}, nil
	}

	recorded, err := s.ledger.TryRecord(ctx, identity, result.Confidence, source, now)
	if err != nil {
		return nil, fmt.Errorf("record attendance for %s: %w", identity.ID, err)
	}

	s.mu.Lock()
	s.seen[identity.ID] = struct{}{}
	s.mu.Unlock()

	outcome := domain.OutcomeAlreadyPresent
	if recorded {
		outcome = domain.OutcomeRecorded
		s.logger.Info("attendance recorded",
			slog.String("user_id", identity.ID),
			slog.String("source", source),
			slog.Float64("confidence", result.Confidence),
		)
	}

	return &domain.FaceDecision{
		Outcome:    outcome,
		Identity:   &identity,
		Confidence: result.Confidence,
	}, nil
}

// ProcessFrame runs detection and per-face recognition over one decoded
// frame already encoded as an image. Faces whose embedding cannot be
// extracted degrade to a Skipped decision instead of failing the frame.
// The context is checked between faces so a run can be stopped without
// leaving partial state anywhere.
func (s *Session) ProcessFrame(ctx context.Context, image []byte, confidenceThresholdPct float64, source string, now time.Time) ([]domain.FaceDecision, error) {
	boxes, err := s.provider.DetectFaces(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	decisions := make([]domain.FaceDecision, 0, len(boxes))
	for _, face := range boxes {
		if err := ctx.Err(); err != nil {
			return decisions, err
		}

		embedding, err := s.provider.ExtractEmbedding(ctx, image, face.BoundingBox)
		if err != nil || len(embedding) == 0 {
			s.logger.Debug("embedding extraction failed, skipping face", slog.Any("error", err))
			decisions = append(decisions, domain.FaceDecision{Outcome: domain.OutcomeSkipped})
			continue
		}

		// Liveness backends are stubs today; a non-live face is still
		// surfaced as Skipped rather than Unknown.
		live, err := s.provider.CheckLiveness(ctx, image, face.BoundingBox)
		if err == nil && live != nil && !live.IsLive {
			decisions = append(decisions, domain.FaceDecision{Outcome: domain.OutcomeSkipped})
			continue
		}

		decision, err := s.ProcessEmbedding(ctx, embedding, confidenceThresholdPct, source, now)
		if err != nil {
			return decisions, err
		}
		decisions = append(decisions, *decision)
	}

	return decisions, nil
}

// audit records the query outcome best-effort: the decision was already
// made and a failed audit insert must not change it.
func (s *Session) audit(ctx context.Context, embedding []float64, result *domain.MatchResult, thresholdPct float64, source string) {
	if s.audits == nil {
		return
	}

	audit := &domain.RecognitionAudit{
		Confidence:     result.Confidence,
		Threshold:      thresholdPct,
		Source:         source,
		QueryEmbedding: embedding,
	}
	if result.Identity != nil {
		id := result.Identity.ID
		audit.MatchedUserID = &id
	}

	if err := s.audits.Create(ctx, audit); err != nil {
		s.logger.Warn("recognition audit insert failed", slog.Any("error", err))
	}
}
