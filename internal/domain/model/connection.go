package model

import "time"

// UserInfo carries the identity the platform reports for the connected account.
type UserInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PlatformConnection is one configured link between the lab and a platform.
type PlatformConnection struct {
	Platform      Platform  `json:"plateforme"`
	Email         string    `json:"email,omitempty"`
	Authenticated bool      `json:"authenticated"`
	UserInfo      *UserInfo `json:"userInfo,omitempty"`
}

// AuthState is the independently polled connection status of one platform.
type AuthState struct {
	Platform      Platform  `json:"plateforme"`
	Authenticated bool      `json:"authenticated"`
	Loading       bool      `json:"loading"`
	Error         string    `json:"error,omitempty"`
	UserInfo      *UserInfo `json:"userInfo,omitempty"`
	// ExpiresIn is the remaining token lifetime, when the platform
	// reports one.
	ExpiresIn *time.Duration `json:"expiresIn,omitempty"`
	CheckedAt time.Time      `json:"checkedAt"`
}
