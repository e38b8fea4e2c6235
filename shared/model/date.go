package model

import (
	"database/sql/driver"
	"dinebook/shared/constant"
	"fmt"
	"time"
)

// Date is a calendar day stored in a DATE column and kept as "YYYY-MM-DD",
// so values compare chronologically as plain strings.
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(constant.DateLayout))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(constant.DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}

	return t, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = NewDate(v)
	case []byte:
		*d = Date(truncateDate(string(v)))
	case string:
		*d = Date(truncateDate(v))
	default:
		return fmt.Errorf("cannot scan %T into model.Date", src)
	}

	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}

	return string(d), nil
}

func truncateDate(v string) string {
	if len(v) > len(constant.DateLayout) {
		return v[:len(constant.DateLayout)]
	}

	return v
}
