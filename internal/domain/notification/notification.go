package notification

import "context"

// Notification is one entry in the user's inbox feed.
type Notification struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Time  string `json:"time"`
	Kind  string `json:"kind"`
}

// Feed provides read and clear access to the notification inbox.
type Feed interface {
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
}
