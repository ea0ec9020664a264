package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/gig-marketplace-api/internal/metrics"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/notify"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultNotifyTimeout = 5 * time.Second

var (
	ErrBidNotPending    = errors.New("bid is no longer available")
	ErrGigStatusChanged = errors.New("gig status changed, please refresh and try again")
)

// HireService coordinates hiring a freelancer for a gig
type HireService struct {
	bidRepo       repository.BidRepository
	gigRepo       repository.GigRepository
	hireRepo      repository.HireRepository
	notifier      notify.Notifier
	metrics       *metrics.Metrics
	logger        *zap.Logger
	notifyTimeout time.Duration
}

// NewHireService creates a new HireService. notifier, m and logger may be nil.
func NewHireService(
	bidRepo repository.BidRepository,
	gigRepo repository.GigRepository,
	hireRepo repository.HireRepository,
	notifier notify.Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) *HireService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HireService{
		bidRepo:       bidRepo,
		gigRepo:       gigRepo,
		hireRepo:      hireRepo,
		notifier:      notifier,
		metrics:       m,
		logger:        logger,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// HireInput represents a hire request
type HireInput struct {
	BidID   uint64
	ActorID uint64
}

// HireResult holds the hired bid and the assigned gig after commit
type HireResult struct {
	Bid *models.Bid
	Gig *models.Gig
}

// Hire marks the bid as hired, assigns its gig and rejects the gig's other
// pending bids in one transaction. Losing a concurrent race surfaces as
// ErrGigStatusChanged and is never retried here. The winner is notified after
// commit; notification failures do not affect the result.
func (s *HireService) Hire(ctx context.Context, input HireInput) (*HireResult, error) {
	start := time.Now()
	result, err := s.hire(ctx, input)
	s.metrics.ObserveHire(hireOutcome(err), time.Since(start).Seconds())
	return result, err
}

func (s *HireService) hire(ctx context.Context, input HireInput) (*HireResult, error) {
	bid, err := s.bidRepo.FindByID(ctx, input.BidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("failed to find bid: %w", err)
	}

	gig, err := s.gigRepo.FindByID(ctx, bid.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("failed to find gig: %w", err)
	}

	if gig.OwnerID != input.ActorID {
		return nil, ErrNotGigOwner
	}
	if !bid.IsPending() {
		return nil, ErrBidNotPending
	}
	if !gig.IsOpen() {
		return nil, ErrGigNotOpen
	}

	event := notify.NewHireEvent(bid.FreelancerID, gig.ID, gig.Title)
	if err := s.hireRepo.Hire(ctx, gig.ID, bid.ID, func() {
		s.dispatch(event)
	}); err != nil {
		switch {
		case errors.Is(err, repository.ErrGigStatusChanged):
			return nil, ErrGigStatusChanged
		case errors.Is(err, repository.ErrBidStatusChanged):
			return nil, ErrBidNotPending
		default:
			return nil, fmt.Errorf("failed to hire bid: %w", err)
		}
	}

	s.logger.Info("freelancer hired",
		zap.Uint64("gig_id", gig.ID),
		zap.Uint64("bid_id", bid.ID),
		zap.Uint64("freelancer_id", bid.FreelancerID),
	)

	hiredBid, err := s.bidRepo.FindByID(ctx, bid.ID, "Freelancer")
	if err != nil {
		return nil, fmt.Errorf("failed to reload bid: %w", err)
	}
	assignedGig, err := s.gigRepo.FindByID(ctx, gig.ID, "Owner")
	if err != nil {
		return nil, fmt.Errorf("failed to reload gig: %w", err)
	}

	return &HireResult{
		Bid: hiredBid,
		Gig: assignedGig,
	}, nil
}

// dispatch hands the event to the notifier without holding up the caller.
func (s *HireService) dispatch(event notify.HireEvent) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyHired(ctx, event); err != nil {
			s.metrics.ObserveNotification(metrics.NotifyOutcomeFailed)
			s.logger.Warn("hire notification failed",
				zap.Uint64("gig_id", event.GigID),
				zap.Uint64("freelancer_id", event.FreelancerID),
				zap.Error(err),
			)
			return
		}
		s.metrics.ObserveNotification(metrics.NotifyOutcomeSent)
	}()
}

func hireOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.HireOutcomeHired
	case IsConflict(err):
		return metrics.HireOutcomeConflict
	case errors.Is(err, ErrNotGigOwner):
		return metrics.HireOutcomeForbidden
	case errors.Is(err, ErrBidNotFound), errors.Is(err, ErrGigNotFound):
		return metrics.HireOutcomeNotFound
	default:
		return metrics.HireOutcomeError
	}
}

// IsConflict reports whether err is a business-rule or concurrency conflict:
// an expected outcome of concurrent use rather than a server fault.
func IsConflict(err error) bool {
	return errors.Is(err, ErrGigNotOpen) ||
		errors.Is(err, ErrBidNotPending) ||
		errors.Is(err, ErrGigStatusChanged) ||
		errors.Is(err, ErrDuplicateBid)
}
