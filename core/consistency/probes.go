package consistency

import (
	"context"
	"fmt"
)

// ReadAfterCreate counts iterations where a freshly created object cannot be read back.
func (r *Runner) ReadAfterCreate(ctx context.Context) (int, error) {
	count := 0
	for i := 0; i < r.iterations; i++ {
		name, err := r.newName()
		if err != nil {
			return 0, err
		}
		if err := r.put(ctx, name, r.payloadA); err != nil {
			return 0, err
		}
		found, err := r.observe(ctx, name)
		if err != nil {
			return 0, err
		}
		if !found {
			count++
		}
		r.logIteration(ReadAfterCreate, i, name, !found)
		if err := r.remove(ctx, name); err != nil {
			return 0, err
		}
	}
	r.logProbe(ReadAfterCreate, count)
	return count, nil
}

// ReadAfterDelete counts iterations where a deleted object can still be read.
func (r *Runner) ReadAfterDelete(ctx context.Context) (int, error) {
	count := 0
	for i := 0; i < r.iterations; i++ {
		name, err := r.newName()
		if err != nil {
			return 0, err
		}
		if err := r.put(ctx, name, r.payloadA); err != nil {
			return 0, err
		}
		if err := r.remove(ctx, name); err != nil {
			return 0, err
		}
		found, err := r.observe(ctx, name)
		if err != nil {
			return 0, err
		}
		if found {
			count++
		}
		r.logIteration(ReadAfterDelete, i, name, found)
	}
	r.logProbe(ReadAfterDelete, count)
	return count, nil
}

// ReadAfterOverwrite counts iterations where a read returns the superseded content.
// Iterations where the object is not visible at all are not counted here; Run
// reports them separately as Report.OverwriteNotVisible. With a zero object size
// the versions are indistinguishable and nothing is counted.
func (r *Runner) ReadAfterOverwrite(ctx context.Context) (int, error) {
	stale, _, err := r.readAfterOverwrite(ctx)
	return stale, err
}

func (r *Runner) readAfterOverwrite(ctx context.Context) (stale, notVisible int, err error) {
	for i := 0; i < r.iterations; i++ {
		name, err := r.newName()
		if err != nil {
			return 0, 0, err
		}
		if err := r.put(ctx, name, r.payloadA); err != nil {
			return 0, 0, err
		}
		if err := r.put(ctx, name, r.payloadB); err != nil {
			return 0, 0, err
		}

		body, found, err := r.read.Get(ctx, r.container, name)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to get %s: %w", name, err)
		}
		isStale := false
		if found {
			matches, err := r.payloadA.Matches(body)
			body.Close()
			if err != nil {
				return 0, 0, fmt.Errorf("failed to read %s: %w", name, err)
			}
			// Empty payloads cannot tell the two versions apart.
			isStale = matches && r.payloadA.Size() > 0
		} else {
			notVisible++
			r.logger.Debug("Overwritten object not visible")
		}
		if isStale {
			stale++
		}
		r.logIteration(ReadAfterOverwrite, i, name, isStale)

		if err := r.remove(ctx, name); err != nil {
			return 0, 0, err
		}
	}
	r.logProbe(ReadAfterOverwrite, stale)
	return stale, notVisible, nil
}

// ListAfterCreate counts iterations where a freshly created object is missing from a listing.
func (r *Runner) ListAfterCreate(ctx context.Context) (int, error) {
	count := 0
	for i := 0; i < r.iterations; i++ {
		name, err := r.newName()
		if err != nil {
			return 0, err
		}
		if err := r.put(ctx, name, r.payloadA); err != nil {
			return 0, err
		}
		ok, err := r.listed(ctx, name)
		if err != nil {
			return 0, err
		}
		if !ok {
			count++
		}
		r.logIteration(ListAfterCreate, i, name, !ok)
		if err := r.remove(ctx, name); err != nil {
			return 0, err
		}
	}
	r.logProbe(ListAfterCreate, count)
	return count, nil
}

// ListAfterDelete counts iterations where a deleted object is still listed.
func (r *Runner) ListAfterDelete(ctx context.Context) (int, error) {
	count := 0
	for i := 0; i < r.iterations; i++ {
		name, err := r.newName()
		if err != nil {
			return 0, err
		}
		if err := r.put(ctx, name, r.payloadA); err != nil {
			return 0, err
		}
		if err := r.remove(ctx, name); err != nil {
			return 0, err
		}
		ok, err := r.listed(ctx, name)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
		r.logIteration(ListAfterDelete, i, name, ok)
	}
	r.logProbe(ListAfterDelete, count)
	return count, nil
}
