package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/config"
	"github.com/fastygo/careconnect/internal/infrastructure/backend"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/pkg/logger"
)

// session binds a command to the configured slot backend.
type session struct {
	cfg    *config.Config
	store  backend.Store
	policy store.HydrationPolicy
	logger *zap.Logger
}

func withSession(cmd *cobra.Command, fn func(*session) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
		Output:   "stderr",
	})
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	b, err := backend.Open(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer b.Close()

	return fn(&session{
		cfg:    cfg,
		store:  b,
		policy: store.ParseHydrationPolicy(cfg.Storage.HydrationPolicy),
		logger: zapLogger,
	})
}

// keyLister is implemented by backends that can enumerate their slots.
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

// resolve maps the short names onto the configured slot keys. Anything else is
// used as a raw key.
func (s *session) resolve(name string) string {
	switch name {
	case "activities":
		return s.cfg.Storage.ActivitiesKey
	case "tasks":
		return s.cfg.Storage.TasksKey
	default:
		return name
	}
}

func (s *session) list(ctx context.Context, out io.Writer) error {
	for _, key := range s.cfg.SlotKeys() {
		_, found, err := s.store.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		state := "empty"
		if found {
			state = "present"
		}
		fmt.Fprintf(out, "%-32s %s\n", key, state)
	}

	lister, ok := s.store.(keyLister)
	if !ok {
		return nil
	}
	keys, err := lister.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	managed := map[string]bool{}
	for _, key := range s.cfg.SlotKeys() {
		managed[key] = true
	}
	for _, key := range keys {
		if !managed[key] {
			fmt.Fprintf(out, "%-32s unmanaged\n", key)
		}
	}
	return nil
}

func (s *session) show(ctx context.Context, out io.Writer, name string) error {
	key := s.resolve(name)
	value, found, err := s.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return fmt.Errorf("%s: %w", key, domain.ErrSlotNotFound)
	}
	fmt.Fprintln(out, value)
	return nil
}

func (s *session) check(ctx context.Context, out io.Writer, name string, strict bool) error {
	key := s.resolve(name)
	value, found, err := s.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		fmt.Fprintf(out, "%s: empty, defaults will be used\n", key)
		return nil
	}

	policy := s.policy
	if strict {
		policy = store.HydrateStrict
	}
	records, err := store.DecodeRecords(value, policy)
	if err != nil {
		return fmt.Errorf("%s would be ignored on mount: %w", key, err)
	}
	fmt.Fprintf(out, "%s: %d records, next id %d\n", key, len(records), store.NextID(records))
	return nil
}

func (s *session) clear(ctx context.Context, out io.Writer, name string) error {
	key := s.resolve(name)
	if key == "" {
		return errors.New("slot key is empty")
	}
	if err := s.store.Clear(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	s.logger.Info("slot cleared", zap.String("slot", key))
	fmt.Fprintf(out, "%s cleared\n", key)
	return nil
}
