package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/productreport/internal/service/commands"
)

const (
	cmdView = "view"
	cmdQuit = "quit"
)

// Admin is the operator requesting reports from the console.
type Admin struct {
	ID   string
	Name string
}

// ReportGenerator hands validated requests to the shared pipeline.
type ReportGenerator struct {
	dispatcher commands.Dispatcher
}

// NewReportGenerator wraps a dispatcher.
func NewReportGenerator(dispatcher commands.Dispatcher) *ReportGenerator {
	return &ReportGenerator{dispatcher: dispatcher}
}

// Generate runs one form through the pipeline.
func (g *ReportGenerator) Generate(ctx context.Context, form commands.Form) (commands.Result, error) {
	return g.dispatcher.HandleForm(ctx, form)
}

// RequestReport asks the generator for a report on behalf of the admin.
func (a Admin) RequestReport(ctx context.Context, generator *ReportGenerator, form commands.Form) (commands.Result, error) {
	return generator.Generate(ctx, form)
}

// Session is an interactive prompt loop: one report per iteration, run to
// completion before the next prompt.
type Session struct {
	admin     Admin
	generator *ReportGenerator
	in        *bufio.Scanner
	out       io.Writer
	logger    *zap.Logger
	now       func() time.Time
}

// NewSession wires a console session reading from in and writing to out.
func NewSession(admin Admin, generator *ReportGenerator, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		admin:     admin,
		generator: generator,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger,
		now:       time.Now,
	}
}

// Run loops until the input ends, the user types quit, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Welcome, %s (%s).\n", s.admin.Name, s.admin.ID)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		defaults := commands.DefaultForm(s.now())

		category, ok := s.prompt("Enter report type (Sales, Inventory, Customer, Supplier, Stock Report, Low Stock Report), 'view' or 'quit':")
		if !ok {
			return s.in.Err()
		}
		switch strings.ToLower(strings.TrimSpace(category)) {
		case cmdQuit:
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		case cmdView:
			s.view()
			continue
		}

		start, ok := s.promptDefault("Enter start date (YYYY-MM-DD)", defaults.StartDate)
		if !ok {
			return s.in.Err()
		}
		end, ok := s.promptDefault("Enter end date (YYYY-MM-DD)", defaults.EndDate)
		if !ok {
			return s.in.Err()
		}
		description, ok := s.prompt("Enter description:")
		if !ok {
			return s.in.Err()
		}

		form := commands.Form{Category: category, StartDate: start, EndDate: end, Description: description}
		result, err := s.admin.RequestReport(ctx, s.generator, form)
		if err != nil {
			s.logger.Debug("report request rejected", zap.Error(err))
			fmt.Fprintf(s.out, "Error: %v\n\n", err)
			continue
		}

		fmt.Fprintln(s.out, result.Text)
		if result.Persisted {
			fmt.Fprintln(s.out, "Report generated and saved successfully!")
		} else {
			fmt.Fprintf(s.out, "Warning: %s\n", result.Warning)
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Session) view() {
	content, err := s.generator.dispatcher.ReadLog()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n\n", err)
		return
	}
	if content == "" {
		fmt.Fprintln(s.out, "The report log is empty.")
		fmt.Fprintln(s.out)
		return
	}
	fmt.Fprint(s.out, content)
}

func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprintln(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptDefault substitutes fallback when the user just presses enter.
func (s *Session) promptDefault(label, fallback string) (string, bool) {
	value, ok := s.prompt(fmt.Sprintf("%s [%s]:", label, fallback))
	if ok && value == "" {
		value = fallback
	}
	return value, ok
}
