package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/metrics"
	"rapv/site/internal/observability"
)

type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeEditing Mode = "editing"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Repository mirrors editor mutations to the remote store.
type Repository[T any, K comparable] interface {
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, key K, item T) error
	Delete(ctx context.Context, key K) error
}

type EditorOptions[T any, K comparable] struct {
	Entity string
	Key    func(T) K
	SetKey func(*T, K)
	// NewKey assigns client-side keys on create. Nil means the form carries a
	// natural key that must be unique.
	NewKey func() K
	// Prepare derives computed fields before a record is stored.
	Prepare func(*T)
	// Less keeps the collection ordered. Nil keeps insertion order.
	Less func(a, b T) bool
	// Repo is nil when no remote store is configured.
	Repo    Repository[T, K]
	Timeout time.Duration
	Logger  *zap.Logger
}

type State[T any, K comparable] struct {
	Mode  Mode `json:"mode"`
	Key   K    `json:"key,omitempty"`
	Draft *T   `json:"draft,omitempty"`
}

// Result is the outcome of one editor command.
type Result[T any] struct {
	Op         Op   `json:"op"`
	Record     T    `json:"record"`
	LocalOnly  bool `json:"local_only,omitempty"`
	RolledBack bool `json:"rolled_back,omitempty"`
}

// Editor keeps one entity collection and its create/update form state in
// sync with the remote store. Remote calls run under the editor lock, so
// writes to one entity are serialized.
type Editor[T any, K comparable] struct {
	opts EditorOptions[T, K]
	log  *zap.Logger

	mu      sync.Mutex
	items   []T
	mode    Mode
	editing K
	draft   T
}

func NewEditor[T any, K comparable](opts EditorOptions[T, K]) *Editor[T, K] {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor[T, K]{
		opts: opts,
		log:  log.With(zap.String("entity", opts.Entity)),
		mode: ModeIdle,
	}
}

func (e *Editor[T, K]) Entity() string { return e.opts.Entity }

func (e *Editor[T, K]) Configured() bool { return e.opts.Repo != nil }

func (e *Editor[T, K]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]T{}, e.items...)
}

func (e *Editor[T, K]) Get(key K) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if idx := e.indexOf(key); idx >= 0 {
		return e.items[idx], true
	}
	var zero T
	return zero, false
}

// Replace installs a freshly loaded collection. An edit whose record
// disappeared is cancelled.
func (e *Editor[T, K]) Replace(items []T) {
	next := append([]T{}, items...)
	if e.opts.Prepare != nil {
		for i := range next {
			e.opts.Prepare(&next[i])
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = next
	e.sort()
	if e.mode == ModeEditing && e.indexOf(e.editing) < 0 {
		e.reset()
	}
}

func (e *Editor[T, K]) State() State[T, K] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeEditing {
		return State[T, K]{Mode: ModeIdle}
	}
	draft := e.draft
	return State[T, K]{Mode: ModeEditing, Key: e.editing, Draft: &draft}
}

// StartEdit switches to editing key and returns the pre-filled form.
func (e *Editor[T, K]) StartEdit(key K) (T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(key)
	if idx < 0 {
		var zero T
		return zero, ErrNotFound
	}
	e.mode = ModeEditing
	e.editing = key
	e.draft = e.items[idx]
	return e.draft, nil
}

func (e *Editor[T, K]) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// Submit creates a record when idle or updates the record being edited.
// A failed remote write restores the previous local state.
func (e *Editor[T, K]) Submit(ctx context.Context, form T) (Result[T], error) {
	if e.opts.Prepare != nil {
		e.opts.Prepare(&form)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mode == ModeEditing {
		e.opts.SetKey(&form, e.editing)
		if err := validateRecord(form); err != nil {
			return Result[T]{Op: OpUpdate, Record: form}, err
		}
		return e.update(ctx, form)
	}
	if err := validateRecord(form); err != nil {
		return Result[T]{Op: OpCreate, Record: form}, err
	}
	return e.create(ctx, form)
}

func (e *Editor[T, K]) create(ctx context.Context, form T) (Result[T], error) {
	if e.opts.NewKey != nil {
		e.opts.SetKey(&form, e.opts.NewKey())
	}
	key := e.opts.Key(form)
	if e.indexOf(key) >= 0 {
		return Result[T]{Op: OpCreate, Record: form}, ErrDuplicateKey
	}

	previous := e.items
	e.items = append(append([]T{}, e.items...), form)
	e.sort()

	if e.opts.Repo == nil {
		return Result[T]{Op: OpCreate, Record: form, LocalOnly: true}, nil
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	stored, err := e.opts.Repo.Insert(ctx, form)
	if err != nil {
		e.items = previous
		return Result[T]{Op: OpCreate, Record: form, RolledBack: true}, e.remoteFailure(OpCreate, err)
	}
	if e.opts.Prepare != nil {
		e.opts.Prepare(&stored)
	}
	if idx := e.indexOf(key); idx >= 0 {
		e.items[idx] = stored
		e.sort()
	}
	return Result[T]{Op: OpCreate, Record: stored}, nil
}

func (e *Editor[T, K]) update(ctx context.Context, form T) (Result[T], error) {
	key := e.editing
	idx := e.indexOf(key)
	if idx < 0 {
		e.reset()
		return Result[T]{Op: OpUpdate, Record: form}, ErrNotFound
	}

	previous := e.items[idx]
	e.items[idx] = form

	if e.opts.Repo == nil {
		e.reset()
		return Result[T]{Op: OpUpdate, Record: form, LocalOnly: true}, nil
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	if err := e.opts.Repo.Update(ctx, key, form); err != nil {
		e.items[idx] = previous
		return Result[T]{Op: OpUpdate, Record: form, RolledBack: true}, e.remoteFailure(OpUpdate, err)
	}
	e.reset()
	return Result[T]{Op: OpUpdate, Record: form}, nil
}

// Delete removes key once confirmed. Deleting the record being edited also
// cancels the edit.
func (e *Editor[T, K]) Delete(ctx context.Context, key K, confirmed bool) (Result[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero T
	if !confirmed {
		return Result[T]{Op: OpDelete, Record: zero}, ErrConfirmationRequired
	}
	idx := e.indexOf(key)
	if idx < 0 {
		return Result[T]{Op: OpDelete, Record: zero}, ErrNotFound
	}

	previous := e.items
	removed := e.items[idx]
	e.items = append(append([]T{}, e.items[:idx]...), e.items[idx+1:]...)

	if e.opts.Repo != nil {
		ctx, cancel := e.withTimeout(ctx)
		defer cancel()
		if err := e.opts.Repo.Delete(ctx, key); err != nil {
			e.items = previous
			return Result[T]{Op: OpDelete, Record: removed, RolledBack: true}, e.remoteFailure(OpDelete, err)
		}
	}
	if e.mode == ModeEditing && e.editing == key {
		e.reset()
	}
	return Result[T]{Op: OpDelete, Record: removed, LocalOnly: e.opts.Repo == nil}, nil
}

func (e *Editor[T, K]) remoteFailure(op Op, err error) error {
	metrics.RemoteWriteFailures.WithLabelValues(e.opts.Entity, string(op)).Inc()
	remoteErr := &RemoteError{Entity: e.opts.Entity, Op: op, Err: err}
	observability.CaptureWriteFailure(e.opts.Entity, string(op), remoteErr)
	e.log.Warn("remote write failed, local change rolled back", zap.String("op", string(op)), zap.Error(err))
	return remoteErr
}

func (e *Editor[T, K]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.opts.Timeout)
}

func (e *Editor[T, K]) indexOf(key K) int {
	for i, item := range e.items {
		if e.opts.Key(item) == key {
			return i
		}
	}
	return -1
}

func (e *Editor[T, K]) sort() {
	if e.opts.Less == nil {
		return
	}
	sort.SliceStable(e.items, func(i, j int) bool { return e.opts.Less(e.items[i], e.items[j]) })
}

func (e *Editor[T, K]) reset() {
	var zeroKey K
	var zeroDraft T
	e.mode = ModeIdle
	e.editing = zeroKey
	e.draft = zeroDraft
}
