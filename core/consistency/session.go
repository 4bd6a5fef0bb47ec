package consistency

import (
	"context"
	"errors"
	"fmt"
)

// Session owns the container lifecycle around a run: the container is created
// before the first probe and removed after the last one.
type Session struct {
	Write     Handle
	Read      Handle
	Container string
	// Location is passed through to CreateContainer. Empty selects the backend default.
	Location string
	// SeparateRead creates and removes the container on the read handle as well,
	// for read handles that do not share the write handle's store.
	SeparateRead bool
}

// Open creates the container. When the read side cannot be created, the write
// side container is deleted again before returning.
func (s *Session) Open(ctx context.Context) error {
	if err := s.Write.CreateContainer(ctx, s.Container, s.Location); err != nil {
		return fmt.Errorf("failed to create container %s: %w", s.Container, err)
	}
	if s.SeparateRead {
		if err := s.Read.CreateContainer(ctx, s.Container, s.Location); err != nil {
			err = fmt.Errorf("failed to create container %s on read handle: %w", s.Container, err)
			if undoErr := s.Write.DeleteContainer(ctx, s.Container); undoErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to delete container %s: %w", s.Container, undoErr))
			}
			return err
		}
	}
	return nil
}

// Close removes objects an aborted run may have left behind and deletes the container.
func (s *Session) Close(ctx context.Context) error {
	var errs []error
	if err := purge(ctx, s.Write, s.Container); err != nil {
		errs = append(errs, err)
	}
	if s.SeparateRead {
		if err := purge(ctx, s.Read, s.Container); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func purge(ctx context.Context, h Handle, container string) error {
	names, err := ListAll(ctx, h, container)
	if err != nil {
		return err
	}
	for name := range names {
		if err := h.Delete(ctx, container, name); err != nil {
			return fmt.Errorf("failed to delete leftover %s: %w", name, err)
		}
	}
	if err := h.DeleteContainer(ctx, container); err != nil {
		return fmt.Errorf("failed to delete container %s: %w", container, err)
	}
	return nil
}
