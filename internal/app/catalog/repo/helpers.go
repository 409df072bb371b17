package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// moneyColumns splits a Money into its numerator/denominator storage pair.
func moneyColumns(m *domain.Money) (int64, int64, error) {
	if m == nil {
		return 0, 1, nil
	}
	if !m.IsSafeForStorage() {
		return 0, 0, fmt.Errorf("value exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}
	return m.Numerator(), m.Denominator(), nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullInt64(v *int64) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *v, Valid: true}
}
