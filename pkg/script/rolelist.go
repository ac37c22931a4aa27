package script

import "slices"

// Slot requests one role.
type Slot struct {
	Filters      []Filter
	IgnoreGlobal bool
	// Source is the script text the slot was parsed from.
	Source string
}

func (s Slot) String() string {
	out := joinFilters(s.Filters)
	if s.IgnoreGlobal {
		out = "-" + out
	}
	return out
}

// Rolelist is a parsed script. It is not modified by generation, so the same
// Rolelist may be generated from any number of times.
type Rolelist struct {
	Slots          []Slot
	GlobalFilters  []Filter
	Modifiers      []Modifier
	WeightChangers []WeightChanger
}

// SlotFilters returns the filters that apply to slot i: its own filters
// followed by the global filters unless the slot opted out.
func (rl *Rolelist) SlotFilters(i int) []Filter {
	slot := rl.Slots[i]
	if slot.IgnoreGlobal || len(rl.GlobalFilters) == 0 {
		return slot.Filters
	}
	out := make([]Filter, 0, len(slot.Filters)+len(rl.GlobalFilters))
	out = append(out, slot.Filters...)
	return append(out, rl.GlobalFilters...)
}

// Clone returns a copy that shares no slices with rl.
func (rl *Rolelist) Clone() *Rolelist {
	out := &Rolelist{
		Slots:          slices.Clone(rl.Slots),
		GlobalFilters:  cloneFilters(rl.GlobalFilters),
		Modifiers:      slices.Clone(rl.Modifiers),
		WeightChangers: slices.Clone(rl.WeightChangers),
	}
	for i := range out.Slots {
		out.Slots[i].Filters = cloneFilters(out.Slots[i].Filters)
	}
	return out
}

func cloneFilters(filters []Filter) []Filter {
	if filters == nil {
		return nil
	}
	out := make([]Filter, len(filters))
	for i, f := range filters {
		f.Members = cloneFilters(f.Members)
		out[i] = f
	}
	return out
}
