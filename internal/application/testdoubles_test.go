package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cnythb-converter/internal/domain"

	"github.com/shopspring/decimal"
)

var errNetwork = errors.New("connection refused")

type fakeRateProvider struct {
	mu    sync.Mutex
	rate  string
	err   error
	calls []domain.CurrencyPair
}

func (f *fakeRateProvider) Get(_ context.Context, pair domain.CurrencyPair) (domain.RateQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pair)
	if f.err != nil {
		return domain.RateQuote{}, f.err
	}
	return domain.RateQuote{Pair: pair, Rate: decimal.RequireFromString(f.rate), Date: "2025-01-02"}, nil
}

func (f *fakeRateProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type reply struct {
	rate string
	err  error
}

// gatedProvider blocks every call until the test releases it, in any order.
type gatedProvider struct {
	mu      sync.Mutex
	calls   []domain.CurrencyPair
	gates   []chan reply
	started chan int
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{started: make(chan int, 16)}
}

func (p *gatedProvider) Get(_ context.Context, pair domain.CurrencyPair) (domain.RateQuote, error) {
	gate := make(chan reply, 1)
	p.mu.Lock()
	p.calls = append(p.calls, pair)
	p.gates = append(p.gates, gate)
	idx := len(p.gates) - 1
	p.mu.Unlock()
	p.started <- idx

	r := <-gate
	if r.err != nil {
		return domain.RateQuote{}, r.err
	}
	return domain.RateQuote{Pair: pair, Rate: decimal.RequireFromString(r.rate), Date: "2025-01-02"}, nil
}

func (p *gatedProvider) waitStarted(t *testing.T) int {
	t.Helper()
	select {
	case idx := <-p.started:
		return idx
	case <-time.After(2 * time.Second):
		t.Fatal("provider was not called")
		return -1
	}
}

func (p *gatedProvider) release(idx int, r reply) {
	p.mu.Lock()
	gate := p.gates[idx]
	p.mu.Unlock()
	gate <- r
}

func (p *gatedProvider) pairs() []domain.CurrencyPair {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.CurrencyPair(nil), p.calls...)
}

// queue is a Dispatcher whose closures the test runs by hand.
type queue chan func()

func (q queue) Post(fn func()) { q <- fn }

func (q queue) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("nothing was posted")
	}
}

type fakeDisplay struct {
	amount  string
	result  string
	from    string
	to      string
	status  string
	title   string
	trigger bool
	repaint int
}

func (d *fakeDisplay) AmountText() string              { return d.amount }
func (d *fakeDisplay) SetAmountText(s string)          { d.amount = s }
func (d *fakeDisplay) ResultText() string              { return d.result }
func (d *fakeDisplay) SetResult(s string)              { d.result = s }
func (d *fakeDisplay) SelectedPair() (string, string)  { return d.from, d.to }
func (d *fakeDisplay) SetSelectedPair(from, to string) { d.from, d.to = from, to }
func (d *fakeDisplay) SetStatus(s string)              { d.status = s }
func (d *fakeDisplay) SetTriggerEnabled(enabled bool)  { d.trigger = enabled }
func (d *fakeDisplay) SetTitle(s string)               { d.title = s }
func (d *fakeDisplay) Refresh()                        { d.repaint++ }
