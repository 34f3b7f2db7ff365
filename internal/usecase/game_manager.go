package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/service"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/tictactoe"
)

const publishTimeout = 2 * time.Second

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botScheduler interface {
	Schedule(sessionID string, turn func(service.Ticket)) service.Ticket
	Cancel(sessionID string)
	Valid(ticket service.Ticket) bool
}

type Settings struct {
	DefaultSize int
	MinSize     int
	MaxSize     int
	HumanSymbol entity.Symbol
	// NewSource, when set, seeds the bot of each new session. The source is shared
	// by the games of that session only.
	NewSource func() rand.Source
}

type session struct {
	mu sync.Mutex

	id         string
	mode       entity.Mode
	activeSize int
	games      map[int]*tictactoe.GameController
	updatedAt  time.Time
}

func (that *session) active() *tictactoe.GameController {
	return that.games[that.activeSize]
}

func (that *session) snapshot() *entity.Session {
	return &entity.Session{
		ID:         that.id,
		Mode:       that.mode,
		ActiveSize: that.activeSize,
		Game:       that.active().State(),
		UpdatedAt:  that.updatedAt,
	}
}

// GameManager serializes the events of each session and drives its bot turns.
type GameManager struct {
	logger    *slog.Logger
	settings  Settings
	sessions  sessionRepo
	scheduler botScheduler

	mu     sync.RWMutex
	active map[string]*session
}

// NewGameManager keeps sessions in memory. sessions may be nil, in which case
// snapshots are not published.
func NewGameManager(logger *slog.Logger, settings Settings, sessions sessionRepo, scheduler botScheduler) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game-manager"),
		settings:  settings,
		sessions:  sessions,
		scheduler: scheduler,
		active:    make(map[string]*session),
	}
}

// CreateSession opens a table with one game per selectable size. A zero size selects the default.
func (that *GameManager) CreateSession(ctx context.Context, mode entity.Mode, size int) (*entity.Session, error) {
	if size == 0 {
		size = that.settings.DefaultSize
	}

	if err := that.validateSize(size); err != nil {
		return nil, err
	}

	var botConfig *entity.BotConfig
	if mode == entity.ModeBot {
		config, err := entity.NewBotConfig(that.settings.HumanSymbol)
		if err != nil {
			return nil, err
		}
		botConfig = &config
	}

	var opts []tictactoe.Option
	if that.settings.NewSource != nil {
		opts = append(opts, tictactoe.WithSource(that.settings.NewSource()))
	}

	games := make(map[int]*tictactoe.GameController, that.settings.MaxSize-that.settings.MinSize+1)
	for boardSize := that.settings.MinSize; boardSize <= that.settings.MaxSize; boardSize++ {
		controller, err := tictactoe.NewGameController(boardSize, mode, botConfig, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create %dx%d game: %w", boardSize, boardSize, err)
		}
		games[boardSize] = controller
	}

	newSession := &session{
		id:         uuid.NewString(),
		mode:       mode,
		activeSize: size,
		games:      games,
		updatedAt:  time.Now(),
	}

	that.mu.Lock()
	that.active[newSession.id] = newSession
	that.mu.Unlock()

	newSession.mu.Lock()
	defer newSession.mu.Unlock()

	that.logger.Info("session created", "session", newSession.id, "mode", mode, "size", size)

	return that.commit(ctx, newSession), nil
}

// GetSession falls back to the published snapshot for sessions this process does not hold.
func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	existing, err := that.getSession(id)
	if err == nil {
		existing.mu.Lock()
		defer existing.mu.Unlock()

		return existing.snapshot(), nil
	}

	if that.sessions == nil {
		return nil, err
	}

	snapshot, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session snapshot: %w", err)
	}

	return snapshot, nil
}

// MakeTurn plays the human's move on the active board.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.Session, error) {
	existing, err := that.getSession(id)
	if err != nil {
		return nil, err
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	controller := existing.active()
	if controller.IsBotTurn() {
		return existing.snapshot(), apperror.ErrNotYourTurn
	}

	if _, err = controller.ApplyMove(cell); err != nil {
		return existing.snapshot(), fmt.Errorf("failed to make turn: %w", err)
	}

	return that.commit(ctx, existing), nil
}

// Reset restarts the active board and drops any pending bot turn.
func (that *GameManager) Reset(ctx context.Context, id string) (*entity.Session, error) {
	existing, err := that.getSession(id)
	if err != nil {
		return nil, err
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	that.scheduler.Cancel(existing.id)
	existing.active().Reset()

	that.logger.Info("session reset", "session", existing.id, "size", existing.activeSize)

	return that.commit(ctx, existing), nil
}

// ChangeSize switches the active board. Games on other sizes keep their state.
func (that *GameManager) ChangeSize(ctx context.Context, id string, size int) (*entity.Session, error) {
	if err := that.validateSize(size); err != nil {
		return nil, err
	}

	existing, err := that.getSession(id)
	if err != nil {
		return nil, err
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	if existing.activeSize == size {
		return existing.snapshot(), nil
	}

	that.scheduler.Cancel(existing.id)
	existing.activeSize = size

	return that.commit(ctx, existing), nil
}

func (that *GameManager) CloseSession(ctx context.Context, id string) error {
	that.mu.Lock()
	existing, ok := that.active[id]
	delete(that.active, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	that.scheduler.Cancel(id)

	if that.sessions != nil {
		if err := that.sessions.DeleteByID(ctx, id); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
			that.logger.Error("failed to delete session snapshot", "session", id, "error", err)
		}
	}

	that.logger.Info("session closed", "session", id)

	return nil
}

// commit publishes the new state and hands the turn to the bot when it is due.
// The caller holds existing.mu.
func (that *GameManager) commit(ctx context.Context, existing *session) *entity.Session {
	existing.updatedAt = time.Now()
	snapshot := existing.snapshot()

	that.publish(ctx, snapshot)

	if snapshot.Game.IsBotTurn() {
		that.scheduler.Schedule(existing.id, that.playBotTurn)
	}

	if snapshot.Game.IsFinished() {
		that.logger.Info("game finished",
			"session", existing.id, "size", snapshot.ActiveSize,
			"status", snapshot.Game.Status, "winner", snapshot.Game.Winner)
	}

	return snapshot
}

func (that *GameManager) playBotTurn(ticket service.Ticket) {
	log := that.logger.With("method", "playBotTurn", "session", ticket.SessionID)

	existing, err := that.getSession(ticket.SessionID)
	if err != nil {
		log.Debug("session closed before the bot turn")
		return
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	if !that.scheduler.Valid(ticket) {
		log.Debug("stale bot turn dropped")
		return
	}

	controller := existing.active()
	cell, err := controller.SelectBotMove()
	if err != nil {
		log.Error("bot failed to select a move", "error", err)
		return
	}

	if _, err = controller.ApplyMove(cell); err != nil {
		log.Error("bot failed to make turn", "cell", cell, "error", err)
		return
	}

	log.Debug("bot played", "cell", cell)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	that.commit(ctx, existing)
}

func (that *GameManager) publish(ctx context.Context, snapshot *entity.Session) {
	if that.sessions == nil {
		return
	}

	if err := that.sessions.CreateOrUpdate(ctx, snapshot); err != nil {
		that.logger.Error("failed to publish session snapshot", "session", snapshot.ID, "error", err)
	}
}

func (that *GameManager) getSession(id string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	existing, ok := that.active[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return existing, nil
}

func (that *GameManager) validateSize(size int) error {
	if size < that.settings.MinSize || size > that.settings.MaxSize {
		return fmt.Errorf("%w: %d outside [%d, %d]", apperror.ErrInvalidSize, size, that.settings.MinSize, that.settings.MaxSize)
	}

	return nil
}
