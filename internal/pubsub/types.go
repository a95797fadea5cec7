package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
}

// noopClient is used when no GCP project is configured.
type noopClient struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventJornadaFinished EventType = "jornada.finished"
)

// JornadaFinishedEvent is published after a jornada has been archived.
type JornadaFinishedEvent struct {
	Type       EventType `msgpack:"type"`
	FinishedAt time.Time `msgpack:"finished_at"`
	Archived   int       `msgpack:"archived"`
	Dropped    int       `msgpack:"dropped"`
	History    int       `msgpack:"history_size"`
	MatchIDs   []string  `msgpack:"match_ids"`
	Leader     string    `msgpack:"leader,omitempty"`
}
