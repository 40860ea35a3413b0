package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSlots is the fixed daily schedule: half-hour slots through the
// morning and afternoon with a lunch gap.
var defaultSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// Catalog is the immutable definition of the day's bookable slots and the
// per-slot capacity. It is fixed for the process lifetime.
type Catalog struct {
	slots    []string
	index    map[string]struct{}
	capacity int
}

func New(capacity int, slots []string) (*Catalog, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	if len(slots) == 0 {
		slots = defaultSlots
	}
	index := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if s == "" {
			return nil, fmt.Errorf("slot label must not be empty")
		}
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("duplicate slot label %q", s)
		}
		index[s] = struct{}{}
	}
	return &Catalog{
		slots:    append([]string{}, slots...),
		index:    index,
		capacity: capacity,
	}, nil
}

// Default returns the built-in schedule with the given capacity.
func Default(capacity int) (*Catalog, error) {
	return New(capacity, nil)
}

// Slots returns the ordered slot labels.
func (c *Catalog) Slots() []string {
	return append([]string{}, c.slots...)
}

// Capacity returns the per-slot capacity.
func (c *Catalog) Capacity() int {
	return c.capacity
}

// Contains reports whether label is a bookable slot.
func (c *Catalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

type fileSchema struct {
	Capacity int      `yaml:"capacity"`
	Slots    []string `yaml:"slots"`
}

// LoadFile reads a catalog definition from a YAML file. A zero capacity in
// the file falls back to defaultCapacity; an empty slot list falls back to
// the built-in schedule.
func LoadFile(path string, defaultCapacity int) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var def fileSchema
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	capacity := def.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}
	cat, err := New(capacity, def.Slots)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}
