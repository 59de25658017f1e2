package attendance

import (
	"time"

	"fitclub/internal/common"
)

// Record is one visit. It is open until CheckOutTime is set, and closed
// for good afterwards.
type Record struct {
	common.Base
	MemberID     string     `json:"member_id"`
	LocationID   string     `json:"location_id"`
	ZoneID       *string    `json:"zone_id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

func (r Record) IsActive() bool {
	return r.CheckOutTime == nil
}

// Duration is the length of a closed visit in whole minutes.
func (r Record) Duration() (int, bool) {
	if r.CheckOutTime == nil {
		return 0, false
	}
	return int(r.CheckOutTime.Sub(r.CheckInTime) / time.Minute), true
}

func (r *Record) CheckOut(now time.Time) error {
	if r.CheckOutTime != nil {
		return ErrAlreadyCheckedOut
	}
	if now.Before(r.CheckInTime) {
		now = r.CheckInTime
	}
	r.CheckOutTime = &now
	r.Touch(now)
	return nil
}
