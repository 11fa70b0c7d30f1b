package core

// StaffMember maps a card token to a display name. Both are unique
// across the whole directory.
type StaffMember struct {
	Token int64  `gorm:"primaryKey;autoIncrement:false;column:token" json:"token"`
	Name  string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (StaffMember) TableName() string {
	return "staff"
}

// TapEvent is one card presentation. Rows are append-only; the count per
// (staff, event_date) pair is the ground truth for in/out parity.
type TapEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StaffName string `gorm:"column:staff_name;not null;index:idx_staff_date" json:"staffName"`
	Timestamp string `gorm:"column:timestamp;not null" json:"timestamp"`
	// EventDate is YYYY-MM-DD for day queries. Empty when the degraded
	// fallback path could not determine the sheet date.
	EventDate string `gorm:"column:event_date;not null;index:idx_staff_date" json:"eventDate"`
	Token     int64  `gorm:"column:token;not null" json:"token"`
}

func (TapEvent) TableName() string {
	return "tap_events"
}
