package consistency

import (
	"context"
	"fmt"
)

// ListAll drains every page of a container listing and returns the set of names seen.
func ListAll(ctx context.Context, h Handle, container string) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	marker := ""
	for {
		page, err := h.ListPage(ctx, container, marker)
		if err != nil {
			return nil, fmt.Errorf("failed to list container %s: %w", container, err)
		}
		for _, name := range page.Names {
			names[name] = struct{}{}
		}
		if !page.Truncated {
			return names, nil
		}
		if page.NextMarker == marker {
			return nil, fmt.Errorf("%w: container %s, marker %q", ErrPaginationStalled, container, marker)
		}
		marker = page.NextMarker
	}
}
