package service

import (
	"log/slog"
	"sync"
	"time"
)

// Ticket identifies one scheduled bot turn. It goes stale as soon as the turn is
// cancelled or replaced by a newer schedule for the same session.
type Ticket struct {
	SessionID  string
	generation uint64
}

type BotScheduler interface {
	Schedule(sessionID string, turn func(Ticket)) Ticket
	Cancel(sessionID string)
	Valid(ticket Ticket) bool
	Stop()
}

type pendingTurn struct {
	generation uint64
	timer      *time.Timer
}

type botScheduler struct {
	logger *slog.Logger
	delay  time.Duration

	mu         sync.Mutex
	generation uint64
	pending    map[string]*pendingTurn
}

// NewBotScheduler runs bot turns after delay. A zero delay runs them right away,
// still on their own goroutine.
func NewBotScheduler(logger *slog.Logger, delay time.Duration) BotScheduler {
	return &botScheduler{
		logger:  logger.With("component", "bot-scheduler"),
		delay:   delay,
		pending: make(map[string]*pendingTurn),
	}
}

// Schedule replaces any pending turn of the session.
func (that *botScheduler) Schedule(sessionID string, turn func(Ticket)) Ticket {
	that.mu.Lock()
	defer that.mu.Unlock()

	if previous, ok := that.pending[sessionID]; ok {
		previous.timer.Stop()
	}

	// generations never repeat, so a ticket cannot match an entry created after it
	that.generation++
	ticket := Ticket{SessionID: sessionID, generation: that.generation}
	that.pending[sessionID] = &pendingTurn{
		generation: ticket.generation,
		timer: time.AfterFunc(that.delay, func() {
			turn(ticket)
		}),
	}

	that.logger.Debug("bot turn scheduled", "session", sessionID, "delay", that.delay)

	return ticket
}

// Cancel stops the pending turn. A turn whose timer already fired sees its ticket
// invalidated and must not be applied.
func (that *botScheduler) Cancel(sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.pending[sessionID]
	if !ok {
		return
	}

	entry.timer.Stop()
	delete(that.pending, sessionID)
}

func (that *botScheduler) Valid(ticket Ticket) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.pending[ticket.SessionID]

	return ok && entry.generation == ticket.generation
}

// Stop cancels every pending turn.
func (that *botScheduler) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sessionID, entry := range that.pending {
		entry.timer.Stop()
		delete(that.pending, sessionID)
	}
}
