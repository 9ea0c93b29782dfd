package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/internal/validation"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// SettingsService keeps one notification settings record per user, stored under the user's id.
type SettingsService struct {
	store repository.Store[*models.NotificationSetting]
}

func NewSettingsService(store repository.Store[*models.NotificationSetting]) *SettingsService {
	return &SettingsService{store: store}
}

// GetNotificationSettings returns the stored settings, or the defaults without saving them.
func (s *SettingsService) GetNotificationSettings(ctx context.Context, userID int64) (*models.NotificationSetting, error) {
	setting, err := s.store.Get(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.DefaultNotificationSetting(userID), nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to load notification settings")
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	return setting, nil
}

// UpdateNotificationSettings replaces the whole record. Fields missing from the payload
// take their default values rather than keeping the stored ones.
func (s *SettingsService) UpdateNotificationSettings(ctx context.Context, userID int64, in models.NotificationSettingCreate) (*models.NotificationSetting, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return nil, err
	}

	setting := models.DefaultNotificationSetting(userID)
	setting.ID = userID
	if in.EmailNotifications != nil {
		setting.EmailNotifications = *in.EmailNotifications
	}
	if in.PushNotifications != nil {
		setting.PushNotifications = *in.PushNotifications
	}
	in.ReminderFrequency.Apply(&setting.ReminderFrequency)

	if err := s.store.Put(ctx, setting); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to save notification settings")
		return nil, fmt.Errorf("failed to save notification settings: %w", err)
	}

	logger.Log.WithField("user_id", userID).Info("Notification settings saved")
	return setting, nil
}

// Subscribers returns the stored settings that want email reminders at the given frequency.
func (s *SettingsService) Subscribers(ctx context.Context, frequency string) ([]*models.NotificationSetting, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification settings: %w", err)
	}

	var matched []*models.NotificationSetting
	for _, setting := range all {
		if setting.EmailNotifications && setting.Frequency() == frequency {
			matched = append(matched, setting)
		}
	}
	return matched, nil
}
