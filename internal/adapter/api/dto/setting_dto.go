package dto

import (
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
)

// SettingRequest stores one configuration value
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse is the API representation of a setting
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingListResponse is the full configuration map
type SettingListResponse struct {
	Items []SettingResponse `json:"items"`
}

// ToSettingResponse converts a setting to the API representation
func ToSettingResponse(s *setting.Setting) *SettingResponse {
	return &SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}
