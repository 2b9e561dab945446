package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cnythb-converter/internal/domain"

	"go.uber.org/zap"
)

const statusConverting = "Converting…"

type SessionConfig struct {
	Numeric     domain.NumericPolicy
	Display     domain.DisplayPolicy
	AutoConvert bool
	// Timeout bounds a single conversion request. Zero means no limit.
	Timeout time.Duration
}

// Session drives a Display from user events. All methods, and every closure
// it posts, must run on the Dispatcher's goroutine.
type Session struct {
	cfg  SessionConfig
	conv Converter
	ui   Display
	loop Dispatcher
	log  *zap.Logger

	ready          bool
	triggerEnabled bool
	inFlight       bool
	// seq identifies the latest request; responses carrying an older value are dropped.
	seq    uint64
	cancel context.CancelFunc
	idle   []func()
}

func NewSession(cfg SessionConfig, conv Converter, ui Display, loop Dispatcher, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, conv: conv, ui: ui, loop: loop, log: log}
	s.refreshTitle()
	s.setTrigger(false)
	return s
}

// Ready marks the display as fully loaded. Until then every event is ignored.
func (s *Session) Ready() {
	s.ready = true
	s.refreshTitle()
	if _, err := s.pair(); err != nil {
		s.ui.SetStatus(domain.UserMessage(err))
	}
	s.refreshTrigger()
}

// Press handles the convert action. It is a no-op while the trigger is disabled.
func (s *Session) Press(ctx context.Context) {
	if !s.triggerEnabled {
		return
	}
	s.convert(ctx, false)
}

func (s *Session) AmountChanged(ctx context.Context) {
	if !s.ready || !s.cfg.AutoConvert {
		return
	}
	s.convert(ctx, true)
}

func (s *Session) PairChanged(ctx context.Context) {
	if !s.ready {
		return
	}
	s.supersede()
	s.ui.SetResult("")
	s.refreshTitle()
	s.refreshTrigger()
	if _, err := s.pair(); err != nil {
		s.ui.SetStatus(domain.UserMessage(err))
		return
	}
	s.ui.SetStatus("")
	if s.cfg.AutoConvert {
		s.convert(ctx, true)
	}
}

// Swap reverses the selected pair and moves the last result into the amount field.
func (s *Session) Swap(ctx context.Context) {
	if !s.ready {
		return
	}
	s.supersede()
	from, to := s.ui.SelectedPair()
	s.ui.SetSelectedPair(to, from)

	if v, err := domain.ValidateAmount(s.ui.ResultText(), domain.DecimalAllowed); err == nil {
		format := domain.DisplayTrimmed
		if s.cfg.Numeric == domain.DigitsOnly {
			format = domain.DisplayInteger
		}
		s.ui.SetAmountText(domain.FormatAmount(v, format))
		s.ui.SetResult("")
	}
	s.refreshTitle()
	s.refreshTrigger()
	if s.cfg.AutoConvert {
		s.convert(ctx, true)
	}
}

func (s *Session) convert(ctx context.Context, auto bool) {
	s.supersede()

	pair, err := s.pair()
	if err != nil {
		s.ui.SetStatus(domain.UserMessage(err))
		s.refreshTrigger()
		return
	}
	amount, err := domain.ValidateAmount(s.ui.AmountText(), s.cfg.Numeric)
	if err != nil {
		if auto && errors.Is(err, domain.ErrEmptyInput) {
			s.ui.SetResult("")
			s.ui.SetStatus("")
		} else {
			s.ui.SetStatus(domain.UserMessage(err))
		}
		s.refreshTrigger()
		return
	}

	id := s.seq
	var (
		reqCtx context.Context
		cancel context.CancelFunc
	)
	if s.cfg.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
	} else {
		reqCtx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	s.inFlight = true
	s.ui.SetStatus(statusConverting)
	s.refreshTrigger()

	go func() {
		conv, err := s.conv.Convert(reqCtx, amount, pair)
		s.loop.Post(func() { s.complete(id, cancel, conv, err) })
	}()
}

func (s *Session) complete(id uint64, cancel context.CancelFunc, conv domain.Conversion, err error) {
	cancel()
	if id != s.seq {
		s.log.Debug("discarding superseded conversion", zap.Uint64("seq", id), zap.Uint64("latest", s.seq))
		return
	}
	s.inFlight = false
	s.cancel = nil
	if err != nil {
		s.ui.SetStatus(domain.UserMessage(err))
	} else {
		q := conv.Quote
		s.ui.SetResult(conv.Format(s.cfg.Display))
		s.ui.SetStatus(fmt.Sprintf("1 %s = %s %s (as of %s)", q.Pair.From, q.Rate, q.Pair.To, q.Date))
	}
	s.refreshTrigger()
	s.ui.Refresh()
	s.flushIdle()
}

// WhenIdle runs fn once no conversion is in flight, immediately if none is.
func (s *Session) WhenIdle(fn func()) {
	s.idle = append(s.idle, fn)
	if !s.inFlight {
		s.flushIdle()
	}
}

func (s *Session) flushIdle() {
	waiting := s.idle
	s.idle = nil
	for _, fn := range waiting {
		fn()
	}
}

// supersede invalidates any in-flight request.
func (s *Session) supersede() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.inFlight = false
}

func (s *Session) pair() (domain.CurrencyPair, error) {
	from, to := s.ui.SelectedPair()
	return domain.NewCurrencyPair(from, to)
}

func (s *Session) refreshTrigger() {
	_, err := s.pair()
	s.setTrigger(s.ready && err == nil && !s.inFlight)
}

func (s *Session) setTrigger(enabled bool) {
	s.triggerEnabled = enabled
	s.ui.SetTriggerEnabled(enabled)
}

func (s *Session) refreshTitle() {
	from, to := s.ui.SelectedPair()
	s.ui.SetTitle(fmt.Sprintf("%s ⇄ %s Converter", from, to))
}
