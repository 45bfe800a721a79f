package scheduler

import (
	"strings"
)

// Template variable names available to report and voucher text fields.
const (
	VarBusinessName  = "business_name"
	VarVoucherTitle  = "voucher_title"
	VarDiscount      = "discount"
	VarExpiry        = "expiry"
	VarVoucherCount  = "voucher_count"
	VarDispatchCount = "dispatch_count"
	VarPeriod        = "period"
)

// Substitute replaces {name} tokens in template with values from vars. A token
// whose variable is missing from vars stays in the output as the literal
// placeholder text; nothing is escaped.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
