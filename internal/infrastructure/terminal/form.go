package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/domain"
)

const help = "enter an amount, c to convert, s to swap, p FROM TO to pick currencies, q to quit"

// Form is a line-oriented stand-in for the converter window. It implements
// application.Display and must only be used from the event loop goroutine.
type Form struct {
	out    io.Writer
	policy domain.NumericPolicy

	amount  string
	result  string
	from    string
	to      string
	status  string
	title   string
	trigger bool
}

var _ application.Display = (*Form)(nil)

func NewForm(out io.Writer, policy domain.NumericPolicy, from, to string) *Form {
	return &Form{out: out, policy: policy, from: from, to: to}
}

func (f *Form) AmountText() string              { return f.amount }
func (f *Form) SetAmountText(s string)          { f.amount = s }
func (f *Form) ResultText() string              { return f.result }
func (f *Form) SetResult(s string)              { f.result = s }
func (f *Form) SelectedPair() (string, string)  { return f.from, f.to }
func (f *Form) SetSelectedPair(from, to string) { f.from, f.to = from, to }
func (f *Form) SetStatus(s string)              { f.status = s }
func (f *Form) SetTriggerEnabled(enabled bool)  { f.trigger = enabled }
func (f *Form) SetTitle(s string)               { f.title = s }

func (f *Form) Refresh() { f.Render() }

func (f *Form) Render() {
	button := "[Convert]"
	if !f.trigger {
		button = "[Convert] (disabled)"
	}
	fmt.Fprintf(f.out, "== %s ==\nFrom (%s): %s\nTo (%s):   %s\n%s\n", f.title, f.from, f.amount, f.to, f.result, button)
	if f.status != "" {
		fmt.Fprintln(f.out, f.status)
	}
}

// Handle applies one input line and re-renders. It reports whether the user quit.
func (f *Form) Handle(ctx context.Context, s *application.Session, line string) bool {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	switch {
	case line == "q" || line == "quit":
		return true
	case line == "" || line == "c":
		s.Press(ctx)
	case line == "s":
		s.Swap(ctx)
	case line == "?" || line == "h":
		f.status = help
	case line == "x":
		f.amount = ""
		s.AmountChanged(ctx)
	case len(fields) == 3 && fields[0] == "p":
		f.from, f.to = strings.ToUpper(fields[1]), strings.ToUpper(fields[2])
		s.PairChanged(ctx)
	case domain.AcceptsPayload(f.policy, line) && domain.AcceptsEdit(f.policy, line):
		f.amount = line
		s.AmountChanged(ctx)
	default:
		f.status = fmt.Sprintf("Input rejected: %q", line)
	}
	f.Render()
	return false
}

// Run feeds lines from in to the form until EOF, a quit command, or ctx is done.
// Every line is handled on loop.
func (f *Form) Run(ctx context.Context, in io.Reader, s *application.Session, loop application.Dispatcher) error {
	quit := make(chan struct{})
	var once sync.Once
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-quit:
				return
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	loop.Post(func() {
		s.Ready()
		f.status = help
		f.Render()
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case line, ok := <-lines:
			if !ok {
				// let the last conversion land before the loop is closed
				idle := make(chan struct{})
				loop.Post(func() { s.WhenIdle(func() { close(idle) }) })
				select {
				case <-idle:
				case <-quit:
				case <-ctx.Done():
					return nil
				}
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			loop.Post(func() {
				select {
				case <-quit:
					return
				default:
				}
				if f.Handle(ctx, s, line) {
					once.Do(func() { close(quit) })
				}
			})
		}
	}
}
