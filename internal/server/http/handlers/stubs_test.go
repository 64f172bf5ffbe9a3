package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

type orderFacadeStub struct {
	OrdersFn       func(context.Context) ([]model.Order, error)
	SeenFn         func(context.Context, int64, bool) error
	CommentFn      func(context.Context, int64, string) error
	StatusFn       func(context.Context, int64, model.OrderStatus) error
	NotifyFn       func(context.Context, int64) error
	seenCalls      []int64
	notifiedOrders []int64
}

func (s *orderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

func (s *orderFacadeStub) SetOrderSeen(ctx context.Context, id int64, seen bool) error {
	s.seenCalls = append(s.seenCalls, id)
	if s.SeenFn != nil {
		return s.SeenFn(ctx, id, seen)
	}
	return nil
}

func (s *orderFacadeStub) UpdateOrderComment(ctx context.Context, id int64, comment string) error {
	if s.CommentFn != nil {
		return s.CommentFn(ctx, id, comment)
	}
	return nil
}

func (s *orderFacadeStub) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status)
	}
	return nil
}

func (s *orderFacadeStub) NotifyCabinet(ctx context.Context, id int64) error {
	s.notifiedOrders = append(s.notifiedOrders, id)
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, id)
	}
	return nil
}

type syncFacadeStub struct {
	SyncPlatformFn func(context.Context, model.Platform) model.SyncStatus
	SyncAllFn      func(context.Context) []model.SyncStatus
	StatusesFn     func() []model.SyncStatus
}

func (s *syncFacadeStub) SyncPlatform(ctx context.Context, p model.Platform) model.SyncStatus {
	if s.SyncPlatformFn != nil {
		return s.SyncPlatformFn(ctx, p)
	}
	return model.SyncStatus{Platform: p, State: model.SyncStateSuccess}
}

func (s *syncFacadeStub) SyncConnectedPlatforms(ctx context.Context) []model.SyncStatus {
	if s.SyncAllFn != nil {
		return s.SyncAllFn(ctx)
	}
	return nil
}

func (s *syncFacadeStub) SyncStatuses() []model.SyncStatus {
	if s.StatusesFn != nil {
		return s.StatusesFn()
	}
	return nil
}

type schedulerStub struct {
	running  bool
	interval int

	SetIntervalFn func(int) error
	RunNowFn      func(context.Context) model.TickReport
	lastReport    *model.TickReport
}

func (s *schedulerStub) Start(context.Context) { s.running = true }
func (s *schedulerStub) Stop()                 { s.running = false }
func (s *schedulerStub) Running() bool         { return s.running }
func (s *schedulerStub) IntervalMinutes() int  { return s.interval }

func (s *schedulerStub) SetInterval(minutes int) error {
	if s.SetIntervalFn != nil {
		return s.SetIntervalFn(minutes)
	}
	s.interval = minutes
	return nil
}

func (s *schedulerStub) RunNow(ctx context.Context) model.TickReport {
	if s.RunNowFn != nil {
		return s.RunNowFn(ctx)
	}
	return model.TickReport{}
}

func (s *schedulerStub) LastReport() *model.TickReport { return s.lastReport }
