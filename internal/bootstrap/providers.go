package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/config"
	"cnythb-converter/internal/domain"
	httpserver "cnythb-converter/internal/infrastructure/http"
	"cnythb-converter/internal/infrastructure/httpx"
	"cnythb-converter/internal/infrastructure/logx"
	"cnythb-converter/internal/infrastructure/provider"
	"cnythb-converter/internal/infrastructure/terminal"
	"cnythb-converter/internal/infrastructure/worker"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TerminalApp is everything cmd/converter needs to run the form.
type TerminalApp struct {
	Form    *terminal.Form
	Session *application.Session
	Loop    *worker.EventLoop
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideHTTPClient(cfg config.Config) *httpx.Client {
	return httpx.New(cfg.DialTimeout, cfg.RequestTimeout)
}

func ProvideRateProvider(cfg config.Config, client *httpx.Client, log *zap.Logger) (application.RateProvider, error) {
	switch cfg.Provider {
	case "fake":
		rate, err := decimal.NewFromString(cfg.FakeRate)
		if err != nil {
			return nil, fmt.Errorf("FAKE_RATE: %w", err)
		}
		log.Info("using fake rate provider", zap.Stringer("rate", rate))
		return provider.NewFake(rate), nil
	case "", "http":
		return &provider.ExchangeRateProvider{BaseURL: cfg.RateAPIBase, Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideRateConverter(rp application.RateProvider, log *zap.Logger) *application.RateConverter {
	return application.NewRateConverter(rp, application.WithLogger(log))
}

func policies(cfg config.Config) (domain.NumericPolicy, domain.DisplayPolicy, error) {
	numeric, err := domain.ParseNumericPolicy(cfg.NumericPolicy)
	if err != nil {
		return "", "", err
	}
	display, err := domain.ParseDisplayPolicy(cfg.DisplayPolicy)
	if err != nil {
		return "", "", err
	}
	return numeric, display, nil
}

func ProvideDefaults(cfg config.Config) (httpserver.Defaults, error) {
	numeric, display, err := policies(cfg)
	if err != nil {
		return httpserver.Defaults{}, err
	}
	pair, err := domain.NewCurrencyPair(cfg.DefaultFrom, cfg.DefaultTo)
	if err != nil {
		return httpserver.Defaults{}, fmt.Errorf("default pair: %w", err)
	}
	return httpserver.Defaults{Numeric: numeric, Display: display, From: pair.From, To: pair.To}, nil
}

const readyTimeout = 5 * time.Second

// ProvideReadyCheck reports ready while the rate provider can quote the default pair.
func ProvideReadyCheck(rp application.RateProvider, d httpserver.Defaults) httpserver.ReadyCheck {
	pair := domain.CurrencyPair{From: d.From, To: d.To}
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		_, err := rp.Get(ctx, pair)
		return err
	}
}

func ProvideServer(conv *application.RateConverter, d httpserver.Defaults, ready httpserver.ReadyCheck, log *zap.Logger) *httpserver.Server {
	s := httpserver.NewServer(conv, d, log)
	s.SetReadyCheck(ready)
	return s
}

func ProvideSessionConfig(cfg config.Config) (application.SessionConfig, error) {
	numeric, display, err := policies(cfg)
	if err != nil {
		return application.SessionConfig{}, err
	}
	return application.SessionConfig{
		Numeric:     numeric,
		Display:     display,
		AutoConvert: cfg.AutoConvert,
		Timeout:     cfg.RequestTimeout,
	}, nil
}

func ProvideOutput() io.Writer { return os.Stdout }

func ProvideForm(cfg config.Config, sc application.SessionConfig, out io.Writer) *terminal.Form {
	return terminal.NewForm(out, sc.Numeric, cfg.DefaultFrom, cfg.DefaultTo)
}

func ProvideEventLoop(log *zap.Logger) *worker.EventLoop { return worker.NewEventLoop(log) }

func ProvideSession(sc application.SessionConfig, conv *application.RateConverter, form *terminal.Form, loop *worker.EventLoop, log *zap.Logger) *application.Session {
	return application.NewSession(sc, conv, form, loop, log.With(zap.String("component", "session")))
}

func ProvideTerminalApp(form *terminal.Form, s *application.Session, loop *worker.EventLoop) *TerminalApp {
	return &TerminalApp{Form: form, Session: s, Loop: loop}
}
