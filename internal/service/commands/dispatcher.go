package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/productreport/internal/domain/models"
	"github.com/mamadbah2/productreport/internal/repository/logfile"
	"github.com/mamadbah2/productreport/internal/service/reporting"
)

// ErrMissingDate indicates the start or end date was left empty.
var ErrMissingDate = errors.New("please enter both start and end dates")

// ErrDateParse indicates a date is not in YYYY-MM-DD form.
var ErrDateParse = errors.New("invalid date format, please use YYYY-MM-DD")

const mirrorTimeout = 10 * time.Second

// Form is the raw request collected from a user, before validation.
type Form struct {
	Category    string `json:"category" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

// DefaultForm returns the pre-filled form: the last seven days, first category.
func DefaultForm(now time.Time) Form {
	return Form{
		Category:  string(models.CategorySales),
		StartDate: now.AddDate(0, 0, -7).Format(models.DateLayout),
		EndDate:   now.Format(models.DateLayout),
	}
}

// Result is what a caller shows after a successful generation.
type Result struct {
	Report    models.Report
	Text      string
	Persisted bool
	Warning   string
	ResetForm bool
}

// Sink persists rendered reports.
type Sink interface {
	Append(text string) error
	Read() (string, error)
}

// Mirror receives a copy of every generated report on a best-effort basis.
type Mirror interface {
	Name() string
	Mirror(ctx context.Context, report models.Report, text string) error
}

// Dispatcher is the request pipeline shared by the HTTP form and the console.
type Dispatcher interface {
	HandleForm(ctx context.Context, form Form) (Result, error)
	Preview(form Form) (models.Report, error)
	ReadLog() (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	engine   *reporting.Engine
	store    reporting.RecordSource
	sink     Sink
	mirrors  []Mirror
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService constructs the request pipeline.
func NewService(engine *reporting.Engine, store reporting.RecordSource, sink Sink, logger *zap.Logger, mirrors ...Mirror) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:   engine,
		store:    store,
		sink:     sink,
		mirrors:  mirrors,
		validate: validator.New(),
		logger:   logger,
	}
}

// HandleForm validates the form, generates and renders the report, then
// appends it to the log. A log failure is downgraded to Result.Warning so the
// rendered report still reaches the user.
func (s *Service) HandleForm(ctx context.Context, form Form) (Result, error) {
	report, err := s.Preview(form)
	if err != nil {
		return Result{}, err
	}

	text := reporting.Render(report)
	result := Result{Report: report, Text: text, Persisted: true, ResetForm: true}

	if err := s.sink.Append(text); err != nil {
		fields := []zap.Field{zap.String("report_id", report.ID.String()), zap.Error(err)}
		var persistErr *logfile.PersistenceError
		if errors.As(err, &persistErr) {
			fields = append(fields, zap.String("path", persistErr.Path), zap.String("op", persistErr.Op))
		}
		s.logger.Warn("report not persisted", fields...)
		result.Persisted = false
		result.Warning = fmt.Sprintf("Error saving report: %v", err)
	}

	s.mirror(ctx, report, text)

	s.logger.Info("report generated",
		zap.String("report_id", report.ID.String()),
		zap.String("category", string(report.Category)),
		zap.Int("rows", len(report.Rows)),
		zap.Bool("persisted", result.Persisted))

	return result, nil
}

// Preview validates the form and generates the report without persisting it.
func (s *Service) Preview(form Form) (models.Report, error) {
	category, rng, description, err := s.parseForm(form)
	if err != nil {
		return models.Report{}, err
	}

	s.logger.Debug("generating report",
		zap.String("category", string(category)),
		zap.Time("start", rng.Start),
		zap.Time("end", rng.End))

	return s.engine.Generate(category, rng, description, s.store)
}

// ReadLog returns the accumulated report log.
func (s *Service) ReadLog() (string, error) {
	return s.sink.Read()
}

func (s *Service) parseForm(form Form) (models.Category, models.DateRange, string, error) {
	form = Form{
		Category:    strings.TrimSpace(form.Category),
		StartDate:   strings.TrimSpace(form.StartDate),
		EndDate:     strings.TrimSpace(form.EndDate),
		Description: strings.TrimSpace(form.Description),
	}

	if err := s.validate.Struct(form); err != nil {
		return "", models.DateRange{}, "", classify(err, form)
	}

	start, err := time.Parse(models.DateLayout, form.StartDate)
	if err != nil {
		return "", models.DateRange{}, "", fmt.Errorf("%w: %s", ErrDateParse, form.StartDate)
	}
	end, err := time.Parse(models.DateLayout, form.EndDate)
	if err != nil {
		return "", models.DateRange{}, "", fmt.Errorf("%w: %s", ErrDateParse, form.EndDate)
	}

	rng := models.NewDateRange(start, end)
	if !rng.Valid() {
		return "", models.DateRange{}, "", reporting.ErrInvalidRange
	}

	return models.ParseCategory(form.Category), rng, form.Description, nil
}

// classify maps validator failures onto the caller error kinds. Missing dates
// win over malformed dates, which win over a missing category.
func classify(err error, form Form) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missingDate, badDate, missingCategory bool
	var badValue string
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "StartDate", "EndDate":
			if fe.Tag() == "required" {
				missingDate = true
				continue
			}
			if !badDate {
				badDate = true
				badValue = fmt.Sprint(fe.Value())
			}
		case "Category":
			missingCategory = true
		}
	}

	switch {
	case missingDate:
		return ErrMissingDate
	case badDate:
		return fmt.Errorf("%w: %s", ErrDateParse, badValue)
	case missingCategory:
		return fmt.Errorf("%w: %q", reporting.ErrUnknownCategory, form.Category)
	}
	return err
}

func (s *Service) mirror(ctx context.Context, report models.Report, text string) {
	for _, m := range s.mirrors {
		mirrorCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
		if err := m.Mirror(mirrorCtx, report, text); err != nil {
			s.logger.Warn("report mirror failed",
				zap.String("mirror", m.Name()),
				zap.String("report_id", report.ID.String()),
				zap.Error(err))
		}
		cancel()
	}
}
