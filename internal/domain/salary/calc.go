package salary

import (
	"github.com/shopspring/decimal"
)

// Policy holds the deduction policy constants. The divisor and tax rate are
// flat values regardless of period length; see config.PayrollConfig.
type Policy struct {
	DailyRateDivisor int64
	TaxRate          decimal.Decimal
}

// DefaultPolicy matches the legacy payroll policy: basicSalary/30 daily rate
// and a flat 5% tax.
var DefaultPolicy = Policy{
	DailyRateDivisor: 30,
	TaxRate:          decimal.RequireFromString("0.05"),
}

var (
	halfDayFactor = decimal.RequireFromString("0.5")
	lateFactor    = decimal.RequireFromString("0.25")
)

// Deductions is the persisted deduction breakdown. Leaves is always zero:
// approved leave is fully paid. Other is a reserved bucket kept at zero until
// a policy fills it.
type Deductions struct {
	Leaves   decimal.Decimal
	Absences decimal.Decimal
	HalfDays decimal.Decimal
	Late     decimal.Decimal
	Tax      decimal.Decimal
	Other    decimal.Decimal
	Total    decimal.Decimal
}

// Calculations is the monetary outcome of a generation run.
type Calculations struct {
	BasicPayment decimal.Decimal
	Deductions   Deductions
	NetSalary    decimal.Decimal
}

// Calculate turns the tallies into the deduction breakdown and net salary.
// No rounding happens here; presentation owns rounding.
func Calculate(basicSalary decimal.Decimal, att AttendanceTally, absentDays int, p Policy) Calculations {
	dailyRate := basicSalary.Div(decimal.NewFromInt(p.DailyRateDivisor))

	d := Deductions{
		Leaves:   decimal.Zero,
		Absences: dailyRate.Mul(decimal.NewFromInt(int64(absentDays))),
		HalfDays: dailyRate.Mul(halfDayFactor).Mul(decimal.NewFromInt(int64(att.HalfDay))),
		Late:     dailyRate.Mul(lateFactor).Mul(decimal.NewFromInt(int64(att.Late))),
		Tax:      basicSalary.Mul(p.TaxRate),
		Other:    decimal.Zero,
	}
	d.Total = d.Leaves.Add(d.Absences).Add(d.HalfDays).Add(d.Late).Add(d.Tax).Add(d.Other)

	return Calculations{
		BasicPayment: basicSalary,
		Deductions:   d,
		NetSalary:    basicSalary.Sub(d.Total),
	}
}
