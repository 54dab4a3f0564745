package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryDelayFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want time.Duration
	}{
		{"nil", nil, 0},
		{"rate limited with hint", errors.New("Too Many Requests: retry after 7"), 7 * time.Second},
		{"rate limited", errors.New("Too Many Requests"), 3 * time.Second},
		{"timeout", timeoutErr{}, 2 * time.Second},
		{"other", errors.New("bad gateway"), time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, retryDelayFromError(tc.err))
		})
	}
}

func TestShortHash(t *testing.T) {
	a := shortHash("123:abc")
	assert.Len(t, a, 16)
	assert.Equal(t, a, shortHash("123:abc"))
	assert.NotEqual(t, a, shortHash("123:abd"))
}

type scriptedUpdates struct {
	calls   int
	offsets []int
	onCall  func(n int) ([]tgbotapi.Update, error)
}

func (s *scriptedUpdates) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.calls++
	s.offsets = append(s.offsets, cfg.Offset)
	return s.onCall(s.calls)
}

func TestRunPollingStopsDuringRetryDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedUpdates{onCall: func(int) ([]tgbotapi.Update, error) {
		cancel()
		return nil, errors.New("Too Many Requests: retry after 30")
	}}

	done := make(chan struct{})
	go func() {
		runPolling(ctx, src, func(tgbotapi.Update) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("polling kept sleeping after cancel")
	}
	assert.Equal(t, 1, src.calls)
}

func TestRunPollingAdvancesOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var handled []int
	src := &scriptedUpdates{onCall: func(n int) ([]tgbotapi.Update, error) {
		if n == 1 {
			return []tgbotapi.Update{{UpdateID: 10}, {UpdateID: 11}}, nil
		}
		cancel()
		return nil, nil
	}}

	runPolling(ctx, src, func(u tgbotapi.Update) { handled = append(handled, u.UpdateID) })

	assert.Equal(t, []int{10, 11}, handled)
	require.Len(t, src.offsets, 2)
	assert.Equal(t, []int{0, 12}, src.offsets)
}
