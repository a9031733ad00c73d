package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"school-site-backend/internal/models"
	"school-site-backend/internal/utils"
)

// FeedbackStore is the slice of the feedback repository the service uses.
type FeedbackStore interface {
	Insert(ctx context.Context, fb *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	MarkReadByToken(ctx context.Context, id primitive.ObjectID, token string) (*models.Feedback, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Notifier is the mail side-channel. Implementations must treat a missing
// configuration as a silent no-op.
type Notifier interface {
	SendFeedbackNotification(fb *models.Feedback, markReadURL string) error
}

type FeedbackService struct {
	repo    FeedbackStore
	mail    Notifier
	baseURL string
	log     *zap.SugaredLogger

	// notify runs the email send; swapped to a synchronous call in tests
	notify func(fn func())
}

func NewFeedbackService(repo FeedbackStore, mail Notifier, baseURL string, log *zap.SugaredLogger) *FeedbackService {
	return &FeedbackService{
		repo:    repo,
		mail:    mail,
		baseURL: baseURL,
		log:     log,
		notify:  func(fn func()) { go fn() },
	}
}

type FeedbackInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Submit persists the submission and kicks off the notification email.
// The email runs off the request path: its outcome never changes what the
// submitter sees.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	fb := &models.Feedback{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Subject:     in.Subject,
		Message:     in.Message,
		SubmittedAt: time.Now().UTC(),
		ReadToken:   utils.NewSecretToken(),
	}
	if err := s.repo.Insert(ctx, fb); err != nil {
		return nil, err
	}

	markReadURL := fmt.Sprintf("%s/api/feedback/%s/mark-read/%s", s.baseURL, fb.ID.Hex(), fb.ReadToken)
	notification := *fb
	s.notify(func() {
		if err := s.mail.SendFeedbackNotification(&notification, markReadURL); err != nil {
			s.log.Warnw("feedback notification failed", "feedback_id", notification.ID.Hex(), "err", err)
		}
	})
	return fb, nil
}

func (s *FeedbackService) MarkReadByToken(ctx context.Context, id primitive.ObjectID, token string) (*models.Feedback, error) {
	return s.repo.MarkReadByToken(ctx, id, token)
}

// ReclaimRead deletes read feedback past the retention window and returns
// how many documents went away. Called by the scheduler.
func (s *FeedbackService) ReclaimRead(ctx context.Context, retentionMonths int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, -retentionMonths, 0)
	return s.repo.DeleteReadBefore(ctx, cutoff)
}
