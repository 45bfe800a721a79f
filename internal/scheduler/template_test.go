package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	out := Substitute("Hello {business_name}, you created {voucher_count} vouchers", map[string]string{
		VarBusinessName: "Cafe Roma",
		VarVoucherCount: "3",
	})

	assert.Equal(t, "Hello Cafe Roma, you created 3 vouchers", out)
}

func TestSubstituteMissingVariableStaysLiteral(t *testing.T) {
	out := Substitute("Latest: {voucher_title} ({discount})", map[string]string{
		VarDiscount: "20% off",
	})

	assert.Equal(t, "Latest: {voucher_title} (20% off)", out)
}

func TestSubstituteNoVariables(t *testing.T) {
	assert.Equal(t, "plain text", Substitute("plain text", nil))
	assert.Equal(t, "{business_name}", Substitute("{business_name}", map[string]string{}))
}

func TestSubstituteRepeatedToken(t *testing.T) {
	out := Substitute("{business_name} and {business_name}", map[string]string{
		VarBusinessName: "Cafe Roma",
	})

	assert.Equal(t, "Cafe Roma and Cafe Roma", out)
}

func TestSubstituteValueNotReExpanded(t *testing.T) {
	out := Substitute("{business_name}", map[string]string{
		VarBusinessName: "{discount}",
		VarDiscount:     "oops",
	})

	assert.Equal(t, "{discount}", out)
}
