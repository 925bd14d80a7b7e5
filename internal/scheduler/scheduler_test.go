package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"opmlkit/internal/scheduler"
	"opmlkit/internal/service"
	"opmlkit/internal/service/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var calls atomic.Int32
	mockRefresh := mock.NewMockRefreshService(ctrl)
	mockRefresh.EXPECT().RefreshAll(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}).AnyTimes()

	s := scheduler.New(mockRefresh, 100*time.Millisecond)
	s.Start()

	time.Sleep(250 * time.Millisecond)

	s.Stop()
	require.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestScheduler_StopCancelsRunningRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	mockRefresh := mock.NewMockRefreshService(ctrl)
	mockRefresh.EXPECT().RefreshAll(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	s := scheduler.New(mockRefresh, time.Hour)
	s.Start()

	<-started
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return, refresh was not cancelled")
	}
}

func TestScheduler_SkipsWhenAlreadyRefreshing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRefresh := mock.NewMockRefreshService(ctrl)
	mockRefresh.EXPECT().RefreshAll(gomock.Any()).Return(service.ErrAlreadyRefreshing).AnyTimes()

	s := scheduler.New(mockRefresh, 50*time.Millisecond)
	s.Start()

	time.Sleep(150 * time.Millisecond)
	s.Stop()
}
