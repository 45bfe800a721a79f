package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/repository"
	"github.com/Ferrari4891/selecttravel-api/internal/scheduler"
	apperrors "github.com/Ferrari4891/selecttravel-api/pkg/errors"
)

const (
	defaultSubject = "Your {business_name} activity report"
	defaultBody    = `<html><body>
<h2>Hello {business_name}</h2>
<p>Here is your activity for {period}.</p>
<p>Vouchers created: {voucher_count}</p>
<p>Latest voucher: {voucher_title} ({discount}, valid until {expiry})</p>
</body></html>`

	reportPeriodDays = 30
)

// Service renders analytics report emails for report schedules.
type Service interface {
	BuildReport(ctx context.Context, schedule *model.Schedule) (*model.ReportEmail, error)
}

type service struct {
	businesses repository.BusinessRepository
	vouchers   repository.VoucherRepository
	results    repository.DispatchResultRepository
}

func NewService(businesses repository.BusinessRepository, vouchers repository.VoucherRepository, results repository.DispatchResultRepository) Service {
	return &service{
		businesses: businesses,
		vouchers:   vouchers,
		results:    results,
	}
}

// BuildReport gathers the business's recent voucher activity and substitutes it
// into the schedule's subject/body templates. Variables the template does not
// reference are simply unused; variables with no value available stay in the
// output as literal placeholders.
func (s *service) BuildReport(ctx context.Context, schedule *model.Schedule) (*model.ReportEmail, error) {
	var tpl model.ReportTemplate
	if err := json.Unmarshal(schedule.Template, &tpl); err != nil {
		return nil, fmt.Errorf("invalid report template: %w", err)
	}

	business, err := s.businesses.Get(ctx, schedule.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	recipient := tpl.RecipientEmail
	if recipient == "" {
		recipient = business.Email
	}
	if recipient == "" {
		return nil, fmt.Errorf("report schedule %s has no recipient", schedule.ID)
	}

	since := time.Now().AddDate(0, 0, -reportPeriodDays)
	count, err := s.vouchers.CountCreatedSince(ctx, business.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count vouchers: %w", err)
	}

	dispatched, err := s.results.CountForBusinessSince(ctx, business.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count dispatches: %w", err)
	}

	vars := map[string]string{
		scheduler.VarBusinessName:  business.Name,
		scheduler.VarVoucherCount:  strconv.Itoa(count),
		scheduler.VarDispatchCount: strconv.Itoa(dispatched),
		scheduler.VarPeriod:        fmt.Sprintf("the last %d days", reportPeriodDays),
	}

	latest, err := s.vouchers.Latest(ctx, business.ID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get latest voucher: %w", err)
	}
	if latest != nil {
		vars[scheduler.VarVoucherTitle] = latest.Title
		vars[scheduler.VarDiscount] = latest.Discount()
		vars[scheduler.VarExpiry] = latest.ExpiresAt.Format("Jan 2, 2006")
	}

	subject := tpl.Subject
	if subject == "" {
		subject = defaultSubject
	}
	body := tpl.Body
	if body == "" {
		body = defaultBody
	}

	return &model.ReportEmail{
		To:      recipient,
		Subject: scheduler.Substitute(subject, vars),
		Body:    scheduler.Substitute(body, vars),
	}, nil
}
