package email

import (
	"context"
)

// Service delivers rendered emails. Failures are reported to the caller, which
// logs them; there is no inline retry.
type Service interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
