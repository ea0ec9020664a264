package notify

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/yukikurage/gig-marketplace-api/internal/constants"
)

// Event is a named message delivered to live connections.
type Event struct {
	Name string
	Data interface{}
}

// Registry maps user rooms to the live connections subscribed to them. One
// registry is created per process and shared by the notifier and the event
// stream handler.
type Registry struct {
	mu               sync.RWMutex
	rooms            map[string]map[string]*Subscription
	subscriberBuffer int
}

// Subscription is a single live connection's membership in a room.
type Subscription struct {
	registry *Registry
	room     string
	id       string
	ch       chan Event
	once     sync.Once
}

// NewRegistry creates an empty registry. Each subscription buffers up to
// subscriberBuffer undelivered events.
func NewRegistry(subscriberBuffer int) *Registry {
	if subscriberBuffer <= 0 {
		subscriberBuffer = constants.SubscriberBuffer
	}
	return &Registry{
		rooms:            make(map[string]map[string]*Subscription),
		subscriberBuffer: subscriberBuffer,
	}
}

// RoomKey returns the room a user's connections join.
func RoomKey(userID uint64) string {
	return constants.UserRoomPrefix + strconv.FormatUint(userID, 10)
}

// Join subscribes a new connection to the user's room.
func (r *Registry) Join(userID uint64) *Subscription {
	sub := &Subscription{
		registry: r,
		room:     RoomKey(userID),
		id:       uuid.NewString(),
		ch:       make(chan Event, r.subscriberBuffer),
	}

	r.mu.Lock()
	members := r.rooms[sub.room]
	if members == nil {
		members = make(map[string]*Subscription)
		r.rooms[sub.room] = members
	}
	members[sub.id] = sub
	r.mu.Unlock()

	return sub
}

// DeliverToUser sends event to every connection in the user's room and
// returns how many accepted it. Sends never block: a connection whose buffer
// is full misses the event.
func (r *Registry) DeliverToUser(userID uint64, event Event) int {
	return r.Deliver(RoomKey(userID), event)
}

// Deliver sends event to every connection in room.
func (r *Registry) Deliver(room string, event Event) int {
	r.mu.RLock()
	subs := make([]*Subscription, 0, len(r.rooms[room]))
	for _, sub := range r.rooms[room] {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, sub := range subs {
		select {
		case sub.ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// ConnectionCount returns the number of live subscriptions across all rooms.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, members := range r.rooms {
		total += len(members)
	}
	return total
}

func (r *Registry) leave(room, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[room]
	if members == nil {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// ID returns the connection identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Room returns the room key the connection joined.
func (s *Subscription) Room() string {
	return s.room
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close removes the connection from its room. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.registry.leave(s.room, s.id)
	})
}
