package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"translatix/backend/internal/scheduler"
	"translatix/backend/internal/service/mock"
)

func TestScheduler_SweepUsesTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	conversations := mock.NewMockConversationService(ctrl)

	conversations.EXPECT().ExpireSessions(gomock.Any(), 2*time.Hour).Return(int64(4), nil)
	conversations.EXPECT().ExpireSessions(gomock.Any(), 2*time.Hour).Return(int64(0), errors.New("database is locked"))

	s := scheduler.New(conversations, 2*time.Hour, "")
	s.Sweep()
	s.Sweep()
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	conversations := mock.NewMockConversationService(ctrl)

	ran := make(chan struct{}, 10)
	conversations.EXPECT().ExpireSessions(gomock.Any(), time.Hour).DoAndReturn(func(ctx context.Context, _ time.Duration) (int64, error) {
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		ran <- struct{}{}
		return 0, nil
	}).MinTimes(1)

	s := scheduler.New(conversations, time.Hour, "@every 1s")
	require.NoError(t, s.Start())

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not run")
	}
	s.Stop()
}

func TestScheduler_InvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := scheduler.New(mock.NewMockConversationService(ctrl), time.Hour, "not a schedule")
	require.Error(t, s.Start())
}
