// Package queue defines message payloads exchanged over the message broker.
package queue

// NightRecordedEvent is published after a night and all of its views
// have been committed.  It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type NightRecordedEvent struct {
	NightID      string `json:"night_id"`
	MovieID      string `json:"movie_id"`
	Time         string `json:"time"`
	Participants int    `json:"participants"`
}
