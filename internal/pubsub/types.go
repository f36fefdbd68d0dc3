package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMemberFound EventType = "member-found"
)

// MemberEvent announces a club member written by a run.
type MemberEvent struct {
	RunID     string `msgpack:"run_id"`
	Club      string `msgpack:"club"`
	FirstName string `msgpack:"first_name"`
	LastName  string `msgpack:"last_name"`
	UserID    string `msgpack:"user_id"`
	FoundAt   int64  `msgpack:"found_at"`
}
