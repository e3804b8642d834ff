package service

import (
	"context"
	"fmt"

	"github.com/ayo6706/wallet-ledger/internal/models"
)

// NoticeStore is the persistence contract for notices.
type NoticeStore interface {
	InsertNotice(ctx context.Context, notice *models.Notice) error
	ListNotices(ctx context.Context, userID int64, limit int) ([]models.Notice, error)
	MarkNoticeRead(ctx context.Context, userID, noticeID int64) error
}

// NoticeService appends and reads user-facing notices. No business logic
// lives here; the orchestrators decide when to notify.
type NoticeService struct {
	store NoticeStore
}

func NewNoticeService(store NoticeStore) *NoticeService {
	return &NoticeService{store: store}
}

// Notify appends one notice.
func (s *NoticeService) Notify(ctx context.Context, userID int64, noticeType, title, message string) error {
	notice := &models.Notice{
		UserID:  userID,
		Type:    noticeType,
		Title:   title,
		Message: message,
	}
	if err := s.store.InsertNotice(ctx, notice); err != nil {
		return fmt.Errorf("emit notice: %w", err)
	}
	return nil
}

func (s *NoticeService) List(ctx context.Context, userID int64, limit int) ([]models.Notice, error) {
	return s.store.ListNotices(ctx, userID, limit)
}

// MarkRead flips the is-read flag; the only mutation notices ever see.
func (s *NoticeService) MarkRead(ctx context.Context, userID, noticeID int64) error {
	return s.store.MarkNoticeRead(ctx, userID, noticeID)
}
