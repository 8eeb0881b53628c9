// Package controller owns the in-memory archive state and exposes one method per user intent
package controller

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/voidarchive/archive/core"
)

var tracer = otel.Tracer("controller")

// Controller is the single writer of the archive state.
// Gateway calls are made without holding mu.
type Controller struct {
	characters core.CharacterService
	logs       core.LogService
	comments   core.CommentService
	profiles   core.ProfileService
	auth       core.AuthService

	mu             sync.Mutex
	state          state
	version        uint64
	firstLoadDone  bool
	authGeneration uint64
	generations    map[string]uint64
	subscribers    map[int]chan Snapshot
	nextSubscriber int
	unsubscribe    func()
}

// New creates a controller in the initial loading state
func New(
	characters core.CharacterService,
	logs core.LogService,
	comments core.CommentService,
	profiles core.ProfileService,
	auth core.AuthService,
) *Controller {
	return &Controller{
		characters:  characters,
		logs:        logs,
		comments:    comments,
		profiles:    profiles,
		auth:        auth,
		state:       initialState(),
		generations: map[string]uint64{},
		subscribers: map[int]chan Snapshot{},
	}
}

// Start subscribes to auth transitions and resolves the current session once
func (c *Controller) Start(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "Controller.Start")
	defer span.End()

	unsubscribe := c.auth.Subscribe(func(user *core.AuthUser) {
		c.resolve(context.WithoutCancel(ctx), user)
	})

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(
			ctx, "failed to resolve current session",
			slog.String("error", err.Error()),
		)
	}

	c.resolve(ctx, user)
}

// Stop detaches from auth transitions and closes every snapshot subscription
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.snapshot(c.version)
}

// Subscribe returns a channel that always holds the most recent snapshot not yet received
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubscriber
	c.nextSubscriber++

	ch := make(chan Snapshot, 1)
	ch <- c.state.snapshot(c.version)
	c.subscribers[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if ch, ok := c.subscribers[id]; ok {
			close(ch)
			delete(c.subscribers, id)
		}
	}
}

// publishLocked hands a new snapshot to every subscriber, replacing any unread one
func (c *Controller) publishLocked() {
	c.version++
	snapshot := c.state.snapshot(c.version)

	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Navigate moves to view, applying the payload options
func (c *Controller) Navigate(view core.View, options ...NavigateOption) error {
	if !view.IsValid() {
		return core.NewErrorInvalidInput("unknown view " + string(view))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.navigateLocked(view, options...)
	c.publishLocked()
	return nil
}

func (c *Controller) navigateLocked(view core.View, options ...NavigateOption) {
	var n navigation
	for _, option := range options {
		option(&n)
	}

	if n.hasCharacter {
		c.state.selectedCharacter = nil
		if n.character != nil {
			character := copyCharacter(*n.character)
			c.state.selectedCharacter = &character
		}
	}
	if n.hasLog {
		c.state.selectedLog = nil
		if n.log != nil {
			log := copyLog(*n.log)
			c.state.selectedLog = &log
		}
	}

	if n.hasFrom {
		c.state.source = n.from
	} else if !view.IsEditor() {
		c.state.source = core.ViewNone
	}

	c.state.view = view
	c.state.scroll = 0
}

// Scroll records the scroll position of the current view
func (c *Controller) Scroll(position int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.scroll = position
	c.publishLocked()
}

// DismissNotice clears the last failure notice
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.notice = ""
	c.publishLocked()
}

type ticket struct {
	key            string
	generation     uint64
	authGeneration uint64
}

// beginLocked marks a new request for key, superseding earlier ones.
// An empty key only tracks auth transitions.
func (c *Controller) beginLocked(key string) ticket {
	if key == "" {
		return ticket{authGeneration: c.authGeneration}
	}
	c.generations[key]++
	return ticket{key, c.generations[key], c.authGeneration}
}

// currentLocked reports whether no newer request or auth transition happened since t was issued
func (c *Controller) currentLocked(t ticket) bool {
	if t.authGeneration != c.authGeneration {
		return false
	}
	return t.key == "" || c.generations[t.key] == t.generation
}

func (c *Controller) begin(key string) ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(key)
}

// failLocked logs a gateway failure and surfaces it as a notice
func (c *Controller) failLocked(ctx context.Context, message string, err error) {
	slog.ErrorContext(
		ctx, message,
		slog.String("error", err.Error()),
	)
	c.state.notice = message + ": " + err.Error()
	c.publishLocked()
}
