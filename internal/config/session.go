package config

import (
	"slices"

	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
)

// Session is the configuration of every parameter group for one UI session.
type Session struct {
	appliers  map[schema.GroupName]*Applier
	groups    []schema.GroupName
	observers []*subscription
	notifying bool
	log       *logger.Logger
}

type subscription struct {
	observer Observer
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// NewSession creates one applier per catalog. Every group starts at its
// defaults with the Custom preset active.
func NewSession(catalogs preset.Catalogs, opts ...Option) (*Session, error) {
	if len(catalogs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "session requires at least one catalog")
	}

	s := &Session{
		appliers:  make(map[schema.GroupName]*Applier, len(catalogs)),
		groups:    catalogs.Groups(),
		observers: nil,
		log:       nil,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.NewNopLogger()
	}

	for _, name := range s.groups {
		s.appliers[name] = NewApplier(catalogs[name], s.notify, s.log)
	}

	return s, nil
}

// Groups returns the group names in display order.
func (s *Session) Groups() []schema.GroupName {
	return slices.Clone(s.groups)
}

// Applier returns the applier of group.
func (s *Session) Applier(group schema.GroupName) (*Applier, error) {
	return s.applier(group, false)
}

// applier looks up group. Mutations are refused while observers are being
// notified, whichever group they target.
func (s *Session) applier(group schema.GroupName, mutate bool) (*Applier, error) {
	if mutate && s.notifying {
		return nil, errors.Newf(errors.ErrCodeApplyInProgress, "cannot change %s while observers are being notified", group)
	}

	a, ok := s.appliers[group]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownGroup, "unknown parameter group %q", group)
	}

	return a, nil
}

// SelectPreset applies the named preset to group.
func (s *Session) SelectPreset(group schema.GroupName, name string) error {
	a, err := s.applier(group, true)
	if err != nil {
		return err
	}

	return a.Apply(name)
}

// EditField sets one parameter of group and marks the group as Custom.
func (s *Session) EditField(group schema.GroupName, key string, value any) error {
	a, err := s.applier(group, true)
	if err != nil {
		return err
	}

	return a.EditField(key, value)
}

// GetState returns a snapshot of group.
func (s *Session) GetState(group schema.GroupName) (State, error) {
	a, err := s.Applier(group)
	if err != nil {
		return State{}, err
	}

	return a.State(), nil
}

// Reset restores the defaults of group.
func (s *Session) Reset(group schema.GroupName) error {
	a, err := s.applier(group, true)
	if err != nil {
		return err
	}

	return a.Reset()
}

// Subscribe registers o for every Change of every group. Observers are called
// in subscription order. The returned function removes the subscription.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	sub := &subscription{observer: o}
	s.observers = append(s.observers, sub)

	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(other *subscription) bool {
			return other == sub
		})
	}
}

func (s *Session) notify(change Change) {
	s.notifying = true
	defer func() { s.notifying = false }()

	// observers may unsubscribe while being notified
	for _, sub := range slices.Clone(s.observers) {
		// each observer gets its own copy of the values
		c := change
		c.Values = change.Values.Clone()
		sub.observer.OnConfigurationChanged(c)
	}
}
