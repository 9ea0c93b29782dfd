package models

const (
	ReminderDaily  = "daily"
	ReminderWeekly = "weekly"
	ReminderNever  = "never"
)

// NotificationSetting is the per-user notification preference record. Once stored its ID
// equals UserID; the unsaved default has ID 0.
type NotificationSetting struct {
	ID                 int64   `json:"id" bson:"_id"`
	UserID             int64   `json:"user_id" bson:"user_id"`
	EmailNotifications bool    `json:"email_notifications" bson:"email_notifications"`
	PushNotifications  bool    `json:"push_notifications" bson:"push_notifications"`
	ReminderFrequency  *string `json:"reminder_frequency" bson:"reminder_frequency"`
}

func (n *NotificationSetting) GetID() int64   { return n.ID }
func (n *NotificationSetting) SetID(id int64) { n.ID = id }
func (n *NotificationSetting) OwnerID() int64 { return n.UserID }

// Frequency returns the reminder frequency, treating an unset value as "never".
func (n *NotificationSetting) Frequency() string {
	if n.ReminderFrequency == nil {
		return ReminderNever
	}
	return *n.ReminderFrequency
}

// NotificationSettingCreate replaces the stored settings as a whole; absent fields take
// defaults. An explicit null reminder_frequency is stored as null.
type NotificationSettingCreate struct {
	EmailNotifications *bool            `json:"email_notifications"`
	PushNotifications  *bool            `json:"push_notifications"`
	ReminderFrequency  Nullable[string] `json:"reminder_frequency" validate:"omitempty,oneof=daily weekly never"`
}

// DefaultNotificationSetting is what a user sees before saving any settings.
func DefaultNotificationSetting(userID int64) *NotificationSetting {
	freq := ReminderDaily
	return &NotificationSetting{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  false,
		ReminderFrequency:  &freq,
	}
}
