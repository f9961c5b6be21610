package model

import "time"

// Activation is the per-device approval record at activations/<deviceID>.
// Approved stays false until the developer flips it in the store.
type Activation struct {
	Email       string    `json:"email"`
	DeviceID    string    `json:"device_id"`
	Approved    bool      `json:"approved"`
	RequestedAt time.Time `json:"requested_at"`
}

type ActivationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	DeviceID string `json:"device_id" binding:"required"`
}

type ActivationStatus struct {
	DeviceID string `json:"device_id"`
	Approved bool   `json:"approved"`
}
