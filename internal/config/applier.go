package config

import (
	"github.com/google/uuid"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"go.uber.org/zap"
)

// Phase is the applier state.
type Phase int

const (
	// PhaseIdle means no mutation is in progress.
	PhaseIdle Phase = iota
	// PhaseApplying covers validation, the swap and the notification of one mutation.
	PhaseApplying
)

func (p Phase) String() string {
	if p == PhaseApplying {
		return "applying"
	}
	return "idle"
}

// Applier owns the configuration of one group and applies presets, edits and
// resets to it.
type Applier struct {
	group   *schema.Group
	catalog *preset.Catalog
	state   State
	phase   Phase
	emit    func(Change)
	log     *logger.Logger
}

// NewApplier creates an applier whose state starts at the schema defaults with
// the Custom preset active. emit receives every Change; it may be nil.
func NewApplier(catalog *preset.Catalog, emit func(Change), log *logger.Logger) *Applier {
	if emit == nil {
		emit = func(Change) {}
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	group := catalog.Group()

	return &Applier{
		group:   group,
		catalog: catalog,
		state: State{
			Group:        group.Name(),
			Values:       group.DefaultBundle(),
			ActivePreset: preset.CustomPresetName,
		},
		phase: PhaseIdle,
		emit:  emit,
		log:   log.With(zap.String("group", string(group.Name()))),
	}
}

// Group returns the schema of the managed group.
func (a *Applier) Group() *schema.Group {
	return a.group
}

// Catalog returns the presets of the managed group.
func (a *Applier) Catalog() *preset.Catalog {
	return a.catalog
}

// Phase returns the current applier phase.
func (a *Applier) Phase() Phase {
	return a.phase
}

// State returns a snapshot of the current configuration.
func (a *Applier) State() State {
	return a.state.Clone()
}

// Apply writes every value of the named preset in one step and makes it the
// active preset. Selecting Custom changes nothing and emits nothing.
// On any error the configuration is left untouched.
func (a *Applier) Apply(name string) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	p, err := a.catalog.Lookup(name)
	if err != nil {
		a.log.Warn("preset rejected", zap.String("preset", name), zap.Error(err))
		return err
	}

	if p.IsCustom() {
		return nil
	}

	values, key, err := a.group.NormalizeBundle(p.Values)
	if err != nil {
		err = errors.NewInvalidPresetError(name, key, err)
		a.log.Warn("preset rejected", zap.String("preset", name), zap.Error(err))
		return err
	}

	next := a.state.Values.Clone()
	for k, v := range values {
		next[k] = v
	}

	a.commit(next, name, CausePreset, "")

	return nil
}

// EditField writes a single value and marks the configuration as Custom, even
// when the value equals the one set by the active preset.
func (a *Applier) EditField(key string, value any) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	v, err := a.group.Normalize(key, value)
	if err != nil {
		a.log.Warn("edit rejected", zap.String("key", key), zap.Any("value", value), zap.Error(err))
		return err
	}

	next := a.state.Values.Clone()
	next[key] = v

	a.commit(next, preset.CustomPresetName, CauseEdit, key)

	return nil
}

// Reset restores every field to its schema default and marks the configuration as Custom.
func (a *Applier) Reset() error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	values, key, err := a.group.NormalizeBundle(a.group.DefaultBundle())
	if err != nil {
		return errors.NewInvalidPresetError(preset.CustomPresetName, key, err)
	}

	a.commit(values, preset.CustomPresetName, CauseReset, "")

	return nil
}

// begin enters PhaseApplying. A mutation issued while another one is still
// running (for example by an observer reacting to a Change) is refused.
func (a *Applier) begin() error {
	if a.phase == PhaseApplying {
		return errors.Newf(errors.ErrCodeApplyInProgress, "%s is being updated; nested changes are not allowed", a.group.Name())
	}

	a.phase = PhaseApplying

	return nil
}

func (a *Applier) end() {
	a.phase = PhaseIdle
}

// commit swaps in the next values and emits the single Change.
func (a *Applier) commit(next schema.Bundle, active string, cause Cause, key string) {
	a.state = State{
		Group:        a.group.Name(),
		Values:       next,
		ActivePreset: active,
	}

	change := Change{
		ID:           uuid.New(),
		Group:        a.group.Name(),
		Values:       next.Clone(),
		ActivePreset: active,
		Cause:        cause,
		Key:          key,
	}

	a.log.Debug("configuration changed",
		zap.Stringer("id", change.ID),
		zap.String("cause", string(cause)),
		zap.String("preset", active),
		zap.String("key", key),
	)

	a.emit(change)
}
