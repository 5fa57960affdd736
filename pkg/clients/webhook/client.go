package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

// APIClient posts report notifications to a webhook with resty.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client posting to url.
func NewClient(url string) *APIClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// Notification is the JSON payload announcing a generated report.
type Notification struct {
	ReportID    string `json:"report_id"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	RowCount    int    `json:"row_count"`
	Aggregate   string `json:"aggregate,omitempty"`
}

// NewNotification summarises a report for the webhook payload.
func NewNotification(report models.Report) Notification {
	n := Notification{
		ReportID:    report.ID.String(),
		Category:    string(report.Category),
		StartDate:   report.Range.Start.Format(models.DateLayout),
		EndDate:     report.Range.End.Format(models.DateLayout),
		Description: report.Description,
		RowCount:    len(report.Rows),
	}
	if report.Aggregate != nil {
		n.Aggregate = report.Aggregate.Label + ": " + report.Aggregate.Value()
	}
	return n
}

// apiError represents an error payload returned by the receiving endpoint.
type apiError struct {
	Error string `json:"error"`
}

// Notify posts the notification.
func (c *APIClient) Notify(ctx context.Context, n Notification) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send report notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}

	return nil
}

// Name identifies the mirror in logs.
func (c *APIClient) Name() string {
	return "webhook"
}

// Mirror announces a generated report.
func (c *APIClient) Mirror(ctx context.Context, report models.Report, _ string) error {
	return c.Notify(ctx, NewNotification(report))
}
