package models

// NotificationSettings mirrors the dashboard's settings page. Nothing reads
// these values to deliver notifications.
type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	ReminderDays       int  `json:"reminderDays"`
	DailyDigest        bool `json:"dailyDigest"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		ReminderDays:       7,
		DailyDigest:        false,
	}
}
