package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsMethod identifies one of the savings strategies a user can follow.
type SavingsMethod string

const (
	SavingsMethod503020    SavingsMethod = "50-30-20"
	SavingsMethodEnvelopes SavingsMethod = "sobres"
	SavingsMethodAutomatic SavingsMethod = "automatico"
	SavingsMethodOneDollar SavingsMethod = "1dolar"
	SavingsMethodRounding  SavingsMethod = "redondeo"
)

// savingsMethodChangeCooldown is how long a user must keep a selected
// savings method before picking a different one.
const savingsMethodChangeCooldown = 15 * 24 * time.Hour

type User struct {
	ID                      uuid.UUID       `db:"id"`
	FullName                string          `db:"full_name"`
	Email                   string          `db:"email"`
	Password                string          `db:"password"`
	CurrentBalance          decimal.Decimal `db:"current_balance"`
	SelectedSavingsMethod   *SavingsMethod  `db:"selected_savings_method"`
	SavingsMethodSelectedAt *time.Time      `db:"savings_method_selected_at"`
	MonthlyIncome           *decimal.Decimal `db:"monthly_income"`
	CreatedAt               time.Time       `db:"created_at"`
	UpdatedAt               time.Time       `db:"updated_at"`
}

// ValidSavingsMethod reports whether m is one of the known methods.
func ValidSavingsMethod(m SavingsMethod) bool {
	switch m {
	case SavingsMethod503020, SavingsMethodEnvelopes, SavingsMethodAutomatic,
		SavingsMethodOneDollar, SavingsMethodRounding:
		return true
	}
	return false
}

// CanChangeSavingsMethod reports whether the 15-day selection lock has passed.
func (u *User) CanChangeSavingsMethod(now time.Time) bool {
	if u.SavingsMethodSelectedAt == nil {
		return true
	}
	return now.Sub(*u.SavingsMethodSelectedAt) >= savingsMethodChangeCooldown
}

// DaysUntilCanChangeMethod returns the remaining lock days, zero if none.
func (u *User) DaysUntilCanChangeMethod(now time.Time) int {
	if u.SavingsMethodSelectedAt == nil {
		return 0
	}
	elapsed := int(now.Sub(*u.SavingsMethodSelectedAt).Hours() / 24)
	remaining := 15 - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
