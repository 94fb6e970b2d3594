package service

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

type GalleryInterface interface {
	Enroll(id, name, department string, embedding []float64) error
	Delete(id string) (bool, error)
	Contains(id string) bool
	Dim() int
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AttendanceRepositoryInterface interface {
	DeleteForUser(ctx context.Context, userID string) error
}

// DefaultSampleCount is how many face samples an enrollment averages into
// the single representative embedding stored per identity.
const DefaultSampleCount = 5

// EnrollmentService owns the identity lifecycle: enrollment writes the
// users row and the gallery entry together, deletion cascades through
// attendance events, the users row, and the gallery entry.
type EnrollmentService struct {
	gallery     GalleryInterface
	users       UserRepositoryInterface
	attendance  AttendanceRepositoryInterface
	logger      *slog.Logger
	sampleCount int
}

func NewEnrollmentService(
	gallery GalleryInterface,
	users UserRepositoryInterface,
	attendance AttendanceRepositoryInterface,
	logger *slog.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentService{
		gallery:     gallery,
		users:       users,
		attendance:  attendance,
		logger:      logger,
		sampleCount: DefaultSampleCount,
	}
}

// WithSampleCount overrides the number of samples an enrollment expects.
func (s *EnrollmentService) WithSampleCount(n int) *EnrollmentService {
	if n > 0 {
		s.sampleCount = n
	}
	return s
}

// Enroll registers a new identity from the captured face samples. The
// samples are averaged into one representative embedding. A duplicate id
// in either store leaves no net state change behind.
func (s *EnrollmentService) Enroll(ctx context.Context, id, name, department string, samples [][]float64) (*domain.Identity, error) {
	if len(samples) != s.sampleCount {
		return nil, domain.ErrInvalidSampleCount.WithError(
			fmt.Errorf("got %d samples, need %d", len(samples), s.sampleCount))
	}
	for i, sample := range samples {
		if len(sample) != s.gallery.Dim() {
			return nil, domain.ErrDimensionMismatch.WithError(
				fmt.Errorf("sample %d has %d values, gallery expects %d", i, len(sample), s.gallery.Dim()))
		}
	}

	if s.gallery.Contains(id) {
		return nil, domain.ErrDuplicateIdentity
	}

	embedding := averageSamples(samples)

	user := &domain.User{
		Identity: domain.Identity{
			ID:         id,
			Name:       name,
			Department: department,
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.gallery.Enroll(id, name, department, embedding); err != nil {
		// Keep the two stores in step: without the gallery entry the
		// users row would describe an identity that can never match.
		if _, delErr := s.users.Delete(ctx, id); delErr != nil {
			s.logger.Error("rollback of users row failed after gallery enroll error",
				slog.String("user_id", id),
				slog.Any("error", delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("identity enrolled",
		slog.String("user_id", id),
		slog.String("department", department),
	)

	return &user.Identity, nil
}

// Delete removes the identity and everything recorded about it: the
// attendance events, the users row, and the gallery entry. It returns
// domain.ErrIdentityNotFound when no store held the id.
func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if !s.gallery.Contains(id) {
			return err
		}
	}

	if err := s.attendance.DeleteForUser(ctx, id); err != nil {
		return fmt.Errorf("cascade attendance delete: %w", err)
	}
	if _, err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete users row: %w", err)
	}
	if _, err := s.gallery.Delete(id); err != nil {
		return fmt.Errorf("delete gallery entry: %w", err)
	}

	s.logger.Info("identity deleted", slog.String("user_id", id))

	return nil
}

// averageSamples computes the element-wise mean of the samples.
func averageSamples(samples [][]float64) []float64 {
	avg := make([]float64, len(samples[0]))
	for _, sample := range samples {
		floats.Add(avg, sample)
	}
	floats.Scale(1/float64(len(samples)), avg)
	return avg
}
