package postgres

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// dateToPg maps an invalid date to NULL so the NOT NULL column rejects it
// instead of storing a normalized neighbour.
func dateToPg(d civil.Date) pgtype.Date {
	return pgtype.Date{Time: d.In(time.UTC), Valid: d.IsValid()}
}

func dateFromPg(d pgtype.Date) civil.Date {
	return civil.DateOf(d.Time)
}

func timeToPg(t civil.Time) pgtype.Time {
	micros := int64(t.Hour)*int64(time.Hour/time.Microsecond) +
		int64(t.Minute)*int64(time.Minute/time.Microsecond) +
		int64(t.Second)*int64(time.Second/time.Microsecond) +
		int64(t.Nanosecond)/int64(time.Microsecond)
	return pgtype.Time{Microseconds: micros, Valid: true}
}

func timeFromPg(t pgtype.Time) civil.Time {
	d := time.Duration(t.Microseconds) * time.Microsecond
	return civil.Time{
		Hour:       int(d / time.Hour),
		Minute:     int(d % time.Hour / time.Minute),
		Second:     int(d % time.Minute / time.Second),
		Nanosecond: int(d % time.Second),
	}
}
