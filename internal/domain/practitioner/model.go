package practitioner

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	LicenseNo *string   `db:"license_no" json:"license_no,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	Pattern   *Pattern  `db:"schedule_pattern" json:"schedule_pattern,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OnDutyDefault reports whether the doctor's weekly pattern puts them on duty
// on the given date, absent any override. A doctor without a pattern is never
// on duty by default.
func (d *Doctor) OnDutyDefault(date time.Time) bool {
	if d.Pattern == nil {
		return false
	}
	return d.Pattern.Covers(date.Weekday())
}
