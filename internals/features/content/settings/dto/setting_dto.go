package dto

import "encoding/json"

type CreateSettingRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type UpdateSettingRequest struct {
	Value   json.RawMessage `json:"value,omitempty"`
	Version *int            `json:"version,omitempty"`
}
