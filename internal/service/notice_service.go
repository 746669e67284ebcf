package service

import (
	"sync"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// INoticeService keeps the failure notices shown to the user.
type INoticeService interface {
	Record(operation, message string, cause error) *entity.Notice
	List(limit int) []*dto.NoticeResponse
}

type noticeService struct {
	mu      sync.Mutex
	notices []*entity.Notice
	size    int
	logger  logger.ILogger
}

func NewNoticeService(size int, log logger.ILogger) INoticeService {
	if size <= 0 {
		size = 100
	}
	return &noticeService{size: size, logger: log}
}

func (s *noticeService) Record(operation, message string, cause error) *entity.Notice {
	n := &entity.Notice{
		Id:         uuid.New(),
		Operation:  operation,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
	if cause != nil {
		n.Cause = cause.Error()
	}

	s.mu.Lock()
	s.notices = append(s.notices, n)
	if len(s.notices) > s.size {
		s.notices = s.notices[len(s.notices)-s.size:]
	}
	s.mu.Unlock()

	s.logger.Error("NOTICE", message, map[string]interface{}{
		"operation": operation,
		"error":     n.Cause,
	})
	return n
}

// List returns the newest notices first.
func (s *noticeService) List(limit int) []*dto.NoticeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.notices) {
		limit = len(s.notices)
	}
	res := make([]*dto.NoticeResponse, 0, limit)
	for i := len(s.notices) - 1; i >= 0 && len(res) < limit; i-- {
		n := s.notices[i]
		res = append(res, &dto.NoticeResponse{
			Id:         n.Id,
			Operation:  n.Operation,
			Message:    n.Message,
			Cause:      n.Cause,
			OccurredAt: n.OccurredAt,
		})
	}
	return res
}
