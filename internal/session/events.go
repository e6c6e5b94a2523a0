package session

import (
	"github.com/terra-clan/interview-assistant/internal/models"
)

// EventType identifies a controller event
type EventType string

const (
	EventState  EventType = "state"
	EventTick   EventType = "tick"
	EventNotice EventType = "notice"
)

const subscriberBuffer = 32

// Event is pushed to subscribers on every state change and countdown tick
type Event struct {
	Type      EventType            `json:"type"`
	State     *models.SessionState `json:"state,omitempty"`
	Remaining int                  `json:"remaining,omitempty"`
	Notice    string               `json:"notice,omitempty"`
}

// Subscribe registers for controller events. A pending welcome-back notice is
// delivered to the first subscriber and then cleared. Call the returned func to unsubscribe.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subsMu.Unlock()

	c.mu.Lock()
	notice := c.notice
	c.notice = ""
	c.mu.Unlock()
	if notice != "" {
		ch <- Event{Type: EventNotice, Notice: notice}
	}

	unsubscribe := func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// publish delivers an event to every subscriber without blocking; slow subscribers miss events
func (c *Controller) publish(ev Event) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for id, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			c.logger.Debug("subscriber lagging, event dropped", "subscriber", id, "type", ev.Type)
		}
	}
}

func (c *Controller) publishState(view models.SessionState) {
	c.publish(Event{Type: EventState, State: &view})
}

// closeSubscribers closes every subscriber channel
func (c *Controller) closeSubscribers() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}
