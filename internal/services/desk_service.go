package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"
	"github.com/senyabanana/rfq-desk/internal/repository"
	"github.com/senyabanana/rfq-desk/internal/workflow"

	"go.uber.org/zap"
)

// SessionView - состояние сессии, возвращаемое клиенту.
type SessionView struct {
	SessionID string `json:"sessionId"`
	workflow.View
}

type DeskService struct {
	Repo     repository.RFQRepository
	Journal  repository.SubmissionRepository
	Sessions *SessionStore
	Logger   *zap.Logger
	now      func() time.Time
}

// NewDeskService создаёт новый экземпляр DeskService.
func NewDeskService(repo repository.RFQRepository, journal repository.SubmissionRepository, sessions *SessionStore, logger *zap.Logger) *DeskService {
	return &DeskService{
		Repo:     repo,
		Journal:  journal,
		Sessions: sessions,
		Logger:   logger,
		now:      time.Now,
	}
}

const journalTimeout = 5 * time.Second

type rfqSnapshot struct {
	rfq        models.RFQEvent
	comparison models.ComparisonData
	buckets    models.ItemBuckets
}

// load загружает RFQ, сравнение и позиции из бэкенда.
func (s *DeskService) load(ctx context.Context, rfqId string) (*rfqSnapshot, error) {
	rfq, err := s.Repo.GetRFQ(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	comparison, err := s.Repo.GetComparison(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	buckets, err := s.Repo.GetItemBuckets(ctx, rfqId)
	if err != nil {
		return nil, err
	}
	return &rfqSnapshot{rfq: *rfq, comparison: *comparison, buckets: *buckets}, nil
}

// OpenSession открывает рабочее место по RFQ.
func (s *DeskService) OpenSession(ctx context.Context, rfqId string) (*SessionView, error) {
	if rfqId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rfq id is required")
	}
	snapshot, err := s.load(ctx, rfqId)
	if err != nil {
		return nil, mapError(err)
	}

	desk := workflow.NewDesk(snapshot.rfq, snapshot.comparison, snapshot.buckets, s.now)
	sess := s.Sessions.add(rfqId, desk)
	s.Logger.Info("session opened",
		zap.String("sessionId", sess.id),
		zap.String("rfqId", rfqId),
		zap.Bool("expired", desk.Expired()))
	return &SessionView{SessionID: sess.id, View: desk.View()}, nil
}

// withSession выполняет действие под блокировкой сессии и возвращает новое состояние.
func (s *DeskService) withSession(sessionId string, action func(sess *deskSession) error) (*SessionView, error) {
	sess, ok := s.Sessions.get(sessionId)
	if !ok {
		return nil, models.NewErrorResponse(http.StatusNotFound, "session not found")
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if action != nil {
		if err := action(sess); err != nil {
			return nil, mapError(err)
		}
	}
	return &SessionView{SessionID: sess.id, View: sess.desk.View()}, nil
}

// GetSession возвращает состояние сессии.
func (s *DeskService) GetSession(sessionId string) (*SessionView, error) {
	return s.withSession(sessionId, nil)
}

// CloseSession закрывает сессию. Несохранённые черновики теряются.
func (s *DeskService) CloseSession(sessionId string) error {
	if !s.Sessions.remove(sessionId) {
		return models.NewErrorResponse(http.StatusNotFound, "session not found")
	}
	s.Logger.Info("session closed", zap.String("sessionId", sessionId))
	return nil
}

// Refresh перезагружает данные RFQ мимо кэша, черновики сохраняются.
func (s *DeskService) Refresh(ctx context.Context, sessionId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		if cache, ok := s.Repo.(repository.CacheInvalidator); ok {
			cache.Invalidate(ctx, sess.rfqId)
		}
		snapshot, err := s.load(ctx, sess.rfqId)
		if err != nil {
			return err
		}
		sess.desk.Reload(snapshot.rfq, snapshot.comparison, snapshot.buckets)
		return nil
	})
}

// Navigate переключает вкладку и строку поиска. Пустой tab оставляет текущую вкладку.
func (s *DeskService) Navigate(sessionId, tab, search string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		nav := sess.desk.Navigator()
		if tab != "" {
			parsed, err := models.ParseTab(tab)
			if err != nil {
				return workflow.ErrInvalidTab
			}
			if err := nav.SetTab(parsed); err != nil {
				return err
			}
		}
		nav.SetSearch(search)
		return nil
	})
}

// Next переходит к следующей позиции с переходом по кругу.
func (s *DeskService) Next(sessionId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		sess.desk.Navigator().Next()
		return nil
	})
}

// Previous переходит к предыдущей позиции с переходом по кругу.
func (s *DeskService) Previous(sessionId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		sess.desk.Navigator().Previous()
		return nil
	})
}

// SetOfferType переключает режим ввода цены.
func (s *DeskService) SetOfferType(sessionId, offerType string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.SetOfferType(models.OfferType(offerType))
	})
}

// StageOffer сохраняет черновик встречной цены.
func (s *DeskService) StageOffer(sessionId string, req models.StageOfferRequest) (*SessionView, error) {
	if req.VendorID == "" || req.ItemID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "vendorId and itemId are required")
	}
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.StageOffer(req.VendorID, req.ItemID, string(req.Value))
	})
}

// CollectOffer добавляет позицию в пакет встречных предложений.
func (s *DeskService) CollectOffer(sessionId, itemId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.CollectOffer(itemId)
	})
}

// RemoveCollectedOffer убирает позицию из пакета встречных предложений.
func (s *DeskService) RemoveCollectedOffer(sessionId, itemId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.RemoveCollectedOffer(itemId)
	})
}

// StagePriority назначает приоритет поставщику по позиции.
func (s *DeskService) StagePriority(sessionId string, req models.PriorityRequest) (*SessionView, error) {
	if req.VendorID == "" || req.ItemID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "vendorId and itemId are required")
	}
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.StagePriority(req.ItemID, req.VendorID, req.Rank, req.Remark)
	})
}

// CollectArc добавляет позицию в пакет ARC-согласования.
func (s *DeskService) CollectArc(sessionId, itemId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.CollectArc(itemId)
	})
}

// RemoveArc убирает позицию из пакета ARC-согласования.
func (s *DeskService) RemoveArc(sessionId, itemId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		return sess.desk.RemoveArc(itemId)
	})
}

// SubmitCounterOffers отправляет пакет встречных предложений.
// Блокировка сессии удерживается на время вызова бэкенда.
func (s *DeskService) SubmitCounterOffers(ctx context.Context, sessionId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		req, err := sess.desk.SubmitCounterOffers(ctx, s.Repo)
		if err != nil && !errors.Is(err, workflow.ErrSubmitFailed) {
			return err
		}
		s.journal(ctx, sess, models.CounterOfferSubmission, req, err)
		if err != nil {
			return err
		}
		s.reload(ctx, sess)
		return nil
	})
}

// SubmitArc отправляет пакет ARC-согласования от имени пользователя.
func (s *DeskService) SubmitArc(ctx context.Context, sessionId, userId string) (*SessionView, error) {
	return s.withSession(sessionId, func(sess *deskSession) error {
		req, err := sess.desk.SubmitArc(ctx, s.Repo, userId)
		if err != nil && !errors.Is(err, workflow.ErrSubmitFailed) {
			return err
		}
		s.journal(ctx, sess, models.ArcApprovalSubmission, req, err)
		if err != nil {
			return err
		}
		s.reload(ctx, sess)
		return nil
	})
}

// reload обновляет данные после успешной отправки. Ошибка только логируется.
func (s *DeskService) reload(ctx context.Context, sess *deskSession) {
	snapshot, err := s.load(ctx, sess.rfqId)
	if err != nil {
		s.Logger.Warn("failed to refresh rfq after submission",
			zap.String("sessionId", sess.id),
			zap.String("rfqId", sess.rfqId),
			zap.Error(err))
		return
	}
	sess.desk.Reload(snapshot.rfq, snapshot.comparison, snapshot.buckets)
}

// journal записывает попытку отправки. Ошибка журнала не влияет на результат отправки.
func (s *DeskService) journal(ctx context.Context, sess *deskSession, kind models.SubmissionKind, req interface{}, submitErr error) {
	logger := s.Logger.With(
		zap.String("sessionId", sess.id),
		zap.String("rfqId", sess.rfqId),
		zap.String("kind", string(kind)))

	submission := models.Submission{
		SessionID:  sess.id,
		RFQEventID: sess.rfqId,
		Kind:       kind,
		Outcome:    models.SucceededSubmission,
	}
	if submitErr != nil {
		submission.Outcome = models.FailedSubmission
		submission.Error = submitErr.Error()
		logger.Warn("batch submission failed", zap.Error(submitErr))
	} else {
		logger.Info("batch submitted")
	}

	if s.Journal == nil {
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		logger.Error("failed to encode submission payload", zap.Error(err))
		return
	}
	submission.Payload = payload

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if _, err := s.Journal.CreateSubmission(jctx, submission); err != nil {
		logger.Error("failed to journal submission", zap.Error(err))
	}
}

// Rounds возвращает историю раундов по позиции.
func (s *DeskService) Rounds(sessionId, itemId string) ([]workflow.Round, error) {
	var rounds []workflow.Round
	_, err := s.withSession(sessionId, func(sess *deskSession) error {
		var err error
		rounds, err = sess.desk.Rounds(itemId)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

// ListSubmissions возвращает журнал отправок по RFQ.
func (s *DeskService) ListSubmissions(ctx context.Context, rfqId string, kinds []string, limit, offset int) ([]models.Submission, error) {
	for _, kind := range kinds {
		if !models.SubmissionKind(kind).Valid() {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "unsupported submission kind: "+kind)
		}
	}
	if s.Journal == nil {
		return []models.Submission{}, nil
	}
	submissions, err := s.Journal.GetRFQSubmissions(ctx, rfqId, kinds, limit, offset)
	if err != nil {
		s.Logger.Error("failed to list submissions", zap.String("rfqId", rfqId), zap.Error(err))
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch submissions")
	}
	return submissions, nil
}
