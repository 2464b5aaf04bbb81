package model

import (
	"time"
)

// Notification represents a reminder message ready for delivery.
type Notification struct {
	OwnerKey  string            `json:"owner_key"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewNotification creates a notification addressed to an owner.
func NewNotification(ownerKey, title, message string) *Notification {
	return &Notification{
		OwnerKey:  ownerKey,
		Title:     title,
		Message:   message,
		Fields:    make(map[string]string),
		Timestamp: time.Now(),
	}
}

// WithField adds a field to the notification.
func (n *Notification) WithField(key, value string) *Notification {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}
