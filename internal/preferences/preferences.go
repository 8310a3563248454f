// Package preferences persists small UI preferences such as the color theme.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/cinelist/internal/shared"
)

// Store is a string key/value store. Get returns [shared.ErrPreferenceNotFound] for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is a [Store] that lives for the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrPreferenceNotFound, key)
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// ThemeKey is the preference key holding "dark" or "light".
const ThemeKey = "theme"

const (
	Dark  = "dark"
	Light = "light"
)

// ApplyFunc receives true for a dark theme.
type ApplyFunc func(dark bool)

// ApplyLipgloss tells lipgloss which background adaptive colors should target.
func ApplyLipgloss(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// Theme is the dark/light preference. It is dark unless the store holds "light".
type Theme struct {
	store Store
	apply ApplyFunc

	mu   sync.Mutex
	dark bool
}

// NewTheme loads the preference from store and applies it once. A nil apply uses [ApplyLipgloss].
// A missing key means dark; any other read failure is returned along with a dark theme.
func NewTheme(ctx context.Context, store Store, apply ApplyFunc) (*Theme, error) {
	if apply == nil {
		apply = ApplyLipgloss
	}
	t := &Theme{store: store, apply: apply, dark: true}

	v, err := store.Get(ctx, ThemeKey)
	if err != nil && !errors.Is(err, shared.ErrPreferenceNotFound) {
		apply(true)
		return t, err
	}
	t.dark = v != Light
	apply(t.dark)
	return t, nil
}

// Dark reports whether the dark theme is active.
func (t *Theme) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Name returns "dark" or "light".
func (t *Theme) Name() string {
	if t.Dark() {
		return Dark
	}
	return Light
}

// Toggle flips the theme, persists it and applies it before returning.
// The in-memory value flips even if persisting fails.
func (t *Theme) Toggle(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set(ctx, !t.dark)
}

// Set selects a theme by name.
func (t *Theme) Set(ctx context.Context, name string) error {
	var dark bool
	switch name {
	case Dark:
		dark = true
	case Light:
	default:
		return fmt.Errorf("%w: theme %q", shared.ErrInvalidArgument, name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set(ctx, dark)
}

func (t *Theme) set(ctx context.Context, dark bool) error {
	t.dark = dark
	t.apply(dark)

	value := Light
	if dark {
		value = Dark
	}
	if err := t.store.Set(ctx, ThemeKey, value); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}
