// Package notify is the delivery capability the core invokes for user
// notifications. The real channel (mobile push, mail, webhook) is an
// integration concern; the service only needs title+body delivery and
// a one-shot schedule.
package notify

import (
	"log"
	"time"
)

type Notifier interface {
	Send(title, body string) error
	ScheduleAt(at time.Time, title, body string) error
}

// LogNotifier writes notifications to the process log. Default backend
// when no push channel is configured.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

func (LogNotifier) Send(title, body string) error {
	log.Printf("[Notify] %s: %s", title, body)
	return nil
}

func (LogNotifier) ScheduleAt(at time.Time, title, body string) error {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	time.AfterFunc(d, func() {
		log.Printf("[Notify] %s: %s", title, body)
	})
	return nil
}
