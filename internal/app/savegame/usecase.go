package savegame

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"warped/internal/app/ports"
	"warped/internal/domain/sim"
)

const DefaultSlot = "warped_save"

type UseCase struct {
	Store   ports.SnapshotStore
	Slot    string
	Metrics ports.CommandMetrics
	Log     zerolog.Logger
}

func (u UseCase) slot() string {
	if u.Slot == "" {
		return DefaultSlot
	}
	return u.Slot
}

// Save writes g's current state to the slot. It must run on the goroutine
// that owns g.
func (u UseCase) Save(ctx context.Context, g *sim.Game) error {
	return u.write(ctx, g.State(), g.Clock().Now())
}

// Autosave is a sim.WithAutosave hook. Failures are logged and counted.
func (u UseCase) Autosave(ctx context.Context, clock sim.Clock) func(*sim.State) {
	return func(s *sim.State) {
		err := u.write(ctx, s, clock.Now())
		if u.Metrics != nil {
			u.Metrics.RecordAutosave(err)
		}
	}
}

func (u UseCase) write(ctx context.Context, s *sim.State, at time.Time) error {
	data, err := Encode(s)
	if err == nil {
		err = u.Store.Put(ctx, ports.SnapshotRecord{
			Slot:      u.slot(),
			Data:      data,
			UpdatedAt: at,
		})
	}
	if err != nil {
		u.Log.Error().Err(err).Str("slot", u.slot()).Msg("save failed")
		return err
	}
	u.Log.Debug().Str("slot", u.slot()).Int("bytes", len(data)).Msg("game saved")
	return nil
}

// Load restores the slot into g. Any failure leaves g on a fresh default
// state and reports false; it never returns an error.
func (u UseCase) Load(ctx context.Context, g *sim.Game) bool {
	restored := u.load(ctx, g)
	if u.Metrics != nil {
		u.Metrics.RecordLoad(restored)
	}
	return restored
}

func (u UseCase) load(ctx context.Context, g *sim.Game) bool {
	rec, err := u.Store.Get(ctx, u.slot())
	if errors.Is(err, ports.ErrNotFound) {
		u.Log.Info().Str("slot", u.slot()).Msg("no saved game, starting fresh")
		g.Reset()
		return false
	}
	if err != nil {
		u.Log.Error().Err(err).Str("slot", u.slot()).Msg("load failed, starting fresh")
		g.Reset()
		return false
	}
	state, err := Decode(rec.Data, g.DefaultState(), g.Rand())
	if err != nil {
		u.Log.Warn().Err(err).Str("slot", u.slot()).Msg("discarding unreadable save")
		if derr := u.Store.Delete(ctx, u.slot()); derr != nil {
			u.Log.Error().Err(derr).Str("slot", u.slot()).Msg("delete corrupt save")
		}
		g.Reset()
		return false
	}
	g.Replace(state)
	u.Log.Info().Str("slot", u.slot()).Time("saved_at", rec.UpdatedAt).Msg("game restored")
	return true
}

// Reset clears the slot and reinitialises g.
func (u UseCase) Reset(ctx context.Context, g *sim.Game) error {
	g.Reset()
	if err := u.Store.Delete(ctx, u.slot()); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	u.Log.Info().Str("slot", u.slot()).Msg("game reset")
	return nil
}
