package handler

import "time"

type consentResponse struct {
	State       string     `json:"state"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	PushEnabled bool       `json:"push_enabled"`
}

type bannerResponse struct {
	Hidden bool `json:"hidden"`
}
