package gpu

import (
	"errors"
	"fmt"

	"blackhole/internal/utils"
)

type owned struct {
	name string
	res  Releaser
}

// Arena is the single ownership list for everything a simulation allocates.
// Release walks it in reverse allocation order exactly once, so dependent
// resources go before what they were built from and the surface goes last.
type Arena struct {
	items    []owned
	released bool
}

func NewArena() *Arena {
	return &Arena{}
}

// Track takes ownership of r. Tracking after Release releases r immediately.
func (a *Arena) Track(name string, r Releaser) error {
	if r == nil {
		return nil
	}
	if a.released {
		return r.Release()
	}
	a.items = append(a.items, owned{name: name, res: r})
	return nil
}

func (a *Arena) Len() int {
	return len(a.items)
}

func (a *Arena) Released() bool {
	return a.released
}

// Release frees every tracked resource. Later calls do nothing. Errors from
// individual releases do not stop the walk; they are joined and returned.
func (a *Arena) Release() error {
	if a.released {
		return nil
	}
	a.released = true

	var errs []error
	for i := len(a.items) - 1; i >= 0; i-- {
		item := a.items[i]
		if err := item.res.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", item.name, err))
			continue
		}
		utils.Debug("Arena: released %s", item.name)
	}
	a.items = nil

	return errors.Join(errs...)
}
