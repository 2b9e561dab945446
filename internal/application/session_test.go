package application

import (
	"context"
	"errors"
	"testing"

	"cnythb-converter/internal/domain"

	"github.com/stretchr/testify/require"
)

func newTestSession(p RateProvider, cfg SessionConfig) (*Session, *fakeDisplay, queue) {
	ui := &fakeDisplay{from: "CNY", to: "THB"}
	q := make(queue, 16)
	s := NewSession(cfg, NewRateConverter(p), ui, q, nil)
	return s, ui, q
}

func Test_Session_IgnoredBeforeReady(t *testing.T) {
	t.Parallel()
	p := &fakeRateProvider{rate: "4.5"}
	s, ui, _ := newTestSession(p, SessionConfig{AutoConvert: true})
	ui.amount = "100"

	require.False(t, ui.trigger)
	s.Press(context.Background())
	s.AmountChanged(context.Background())
	require.Zero(t, p.callCount())
	require.Equal(t, "CNY ⇄ THB Converter", ui.title)

	s.Ready()
	require.True(t, ui.trigger)
}

func Test_Session_PressConverts(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{Numeric: domain.DigitsOnly, Display: domain.DisplayInteger})
	s.Ready()
	ui.amount = "100"

	s.Press(context.Background())
	idx := p.waitStarted(t)
	require.Equal(t, statusConverting, ui.status)
	require.False(t, ui.trigger)

	// disabled trigger swallows a second press
	s.Press(context.Background())

	p.release(idx, reply{rate: "4.5"})
	q.runNext(t)
	require.Equal(t, "450", ui.result)
	require.Equal(t, "1 CNY = 4.5 THB (as of 2025-01-02)", ui.status)
	require.True(t, ui.trigger)
	require.Equal(t, 1, ui.repaint)
	require.Len(t, p.pairs(), 1)
}

func Test_Session_InvalidAmount(t *testing.T) {
	t.Parallel()
	p := &fakeRateProvider{rate: "4.5"}
	s, ui, _ := newTestSession(p, SessionConfig{Numeric: domain.DecimalAllowed})
	s.Ready()

	s.Press(context.Background())
	require.Equal(t, "Please enter an amount.", ui.status)

	ui.amount = "1.2.3"
	s.Press(context.Background())
	require.Equal(t, "Please enter a valid number for the amount.", ui.status)
	require.True(t, ui.trigger)
	require.Zero(t, p.callCount())
}

func Test_Session_SameCurrencyDisablesTrigger(t *testing.T) {
	t.Parallel()
	p := &fakeRateProvider{rate: "1"}
	s, ui, _ := newTestSession(p, SessionConfig{AutoConvert: true})
	s.Ready()
	ui.amount = "5"

	ui.to = "CNY"
	s.PairChanged(context.Background())
	require.False(t, ui.trigger)
	require.Equal(t, "Please choose two different currencies.", ui.status)

	s.Press(context.Background())
	s.AmountChanged(context.Background())
	require.Zero(t, p.callCount())
}

func Test_Session_DiscardsSupersededResponse(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{AutoConvert: true, Display: domain.DisplayTrimmed})
	s.Ready()

	ui.amount = "100"
	s.AmountChanged(context.Background())
	first := p.waitStarted(t)

	ui.amount = "200"
	s.AmountChanged(context.Background())
	second := p.waitStarted(t)

	p.release(second, reply{rate: "4.5"})
	q.runNext(t)
	require.Equal(t, "900", ui.result)

	// the older response arrives last and must not overwrite the display
	p.release(first, reply{rate: "9"})
	q.runNext(t)
	require.Equal(t, "900", ui.result)
	require.Equal(t, "1 CNY = 4.5 THB (as of 2025-01-02)", ui.status)
	require.True(t, ui.trigger)
	require.Equal(t, 1, ui.repaint, "superseded response must not repaint")
}

func Test_Session_FetchFailureReenablesTrigger(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{})
	s.Ready()
	ui.amount = "1"

	s.Press(context.Background())
	p.release(p.waitStarted(t), reply{err: errors.New("dial tcp: timeout")})
	q.runNext(t)

	require.Equal(t, "Failed to fetch rate.", ui.status)
	require.Empty(t, ui.result)
	require.True(t, ui.trigger)
}

func Test_Session_SwapIssuesFreshReversedRequest(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{Display: domain.DisplayTrimmed})
	s.Ready()
	ui.amount = "100"

	s.Press(context.Background())
	p.release(p.waitStarted(t), reply{rate: "4.5"})
	q.runNext(t)
	require.Equal(t, "450", ui.result)

	s.Swap(context.Background())
	require.Equal(t, "THB", ui.from)
	require.Equal(t, "CNY", ui.to)
	require.Equal(t, "450", ui.amount)
	require.Empty(t, ui.result)
	require.Equal(t, "THB ⇄ CNY Converter", ui.title)

	s.Press(context.Background())
	p.release(p.waitStarted(t), reply{rate: "0.2"})
	q.runNext(t)
	require.Equal(t, "90", ui.result)

	require.Equal(t, []domain.CurrencyPair{
		{From: domain.CNY, To: domain.THB},
		{From: domain.THB, To: domain.CNY},
	}, p.pairs())
}

func Test_Session_AutoConvertClearsOnEmpty(t *testing.T) {
	t.Parallel()
	p := &fakeRateProvider{rate: "4.5"}
	s, ui, _ := newTestSession(p, SessionConfig{AutoConvert: true})
	s.Ready()
	ui.result = "450"

	ui.amount = ""
	s.AmountChanged(context.Background())
	require.Empty(t, ui.result)
	require.Empty(t, ui.status)
	require.Zero(t, p.callCount())
}

func Test_Session_WhenIdleWaitsForLatestCompletion(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{Display: domain.DisplayTrimmed})
	s.Ready()

	var calls int
	s.WhenIdle(func() { calls++ })
	require.Equal(t, 1, calls)

	ui.amount = "100"
	s.Press(context.Background())
	idx := p.waitStarted(t)
	s.WhenIdle(func() { calls++ })
	require.Equal(t, 1, calls)

	p.release(idx, reply{rate: "4.5"})
	q.runNext(t)
	require.Equal(t, 2, calls)
	require.Equal(t, "450", ui.result)
}

func Test_Session_SwapRoundsFractionalResultForDigitsOnly(t *testing.T) {
	t.Parallel()
	p := newGatedProvider()
	s, ui, q := newTestSession(p, SessionConfig{Numeric: domain.DigitsOnly, Display: domain.DisplayTrimmed})
	s.Ready()
	ui.amount = "100"

	s.Press(context.Background())
	p.release(p.waitStarted(t), reply{rate: "4.504"})
	q.runNext(t)
	require.Equal(t, "450.4", ui.result)

	s.Swap(context.Background())
	require.Equal(t, "THB", ui.from)
	require.Equal(t, "450", ui.amount)
	require.Empty(t, ui.result)
}
