// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package report

// Queue collects messages in order for later inspection.
type Queue struct {
	Messages []Message
}

func (q *Queue) Reset() {
	q.Messages = nil
}

func (q *Queue) Report(msg Message) {
	q.Messages = append(q.Messages, msg)
}

// Next removes and returns the oldest message.
func (q *Queue) Next() (msg Message, ok bool) {
	if len(q.Messages) > 0 {
		ok = true
		msg = q.Messages[0]
		q.Messages = q.Messages[1:]
	}
	return
}

// Last returns the newest message without removing it.
func (q *Queue) Last() (msg Message, ok bool) {
	if len(q.Messages) > 0 {
		ok = true
		msg = q.Messages[len(q.Messages)-1]
	}
	return
}
