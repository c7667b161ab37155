package character

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DieType is a hit die size. Its value is the number of sides.
type DieType int

const (
	D6  DieType = 6
	D8  DieType = 8
	D10 DieType = 10
	D12 DieType = 12
)

// Valid reports whether d is one of d6, d8, d10 or d12.
func (d DieType) Valid() bool {
	return d == D6 || d == D8 || d == D10 || d == D12
}

// Sides returns the number of faces on the die.
func (d DieType) Sides() int { return int(d) }

// String returns the die in "d10" form.
func (d DieType) String() string { return "d" + strconv.Itoa(int(d)) }

// MarshalText implements encoding.TextMarshaler.
func (d DieType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("character: invalid hit die %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; it accepts "d10" or "10".
func (d *DieType) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(string(b))), "d")
	n, err := strconv.Atoi(s)
	if err != nil || !DieType(n).Valid() {
		return fmt.Errorf("character: invalid hit die %q", string(b))
	}
	*d = DieType(n)
	return nil
}

// HitDicePool counts the dice of one size a character owns and has spent.
//
// Invariant: 0 <= Used <= Total.
type HitDicePool struct {
	Total int `yaml:"total"`
	Used  int `yaml:"used"`
}

// Remaining returns Total - Used.
func (p HitDicePool) Remaining() int { return p.Total - p.Used }

// HitDice maps die size to its pool. Multiclass characters hold several sizes.
type HitDice map[DieType]HitDicePool

// Validate checks the 0 <= Used <= Total invariant on every pool.
func (h HitDice) Validate() error {
	var errs []error
	for _, d := range h.Dice() {
		p := h[d]
		if !d.Valid() {
			errs = append(errs, &FieldError{Field: "hit_dice", Value: int(d), Reason: "unknown die size"})
		}
		if p.Total < 0 {
			errs = append(errs, &FieldError{Field: "hit_dice." + d.String() + ".total", Value: p.Total, Reason: "must be >= 0"})
		}
		if p.Used < 0 || p.Used > p.Total {
			errs = append(errs, &FieldError{Field: "hit_dice." + d.String() + ".used", Value: p.Used, Reason: "must be 0-total"})
		}
	}
	return errors.Join(errs...)
}

// Dice returns the die sizes held, largest first.
func (h HitDice) Dice() []DieType {
	out := make([]DieType, 0, len(h))
	for d := range h {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Total returns the number of hit dice across all sizes.
func (h HitDice) Total() int {
	n := 0
	for _, p := range h {
		n += p.Total
	}
	return n
}

// Used returns the number of spent hit dice across all sizes.
func (h HitDice) Used() int {
	n := 0
	for _, p := range h {
		n += p.Used
	}
	return n
}

// Clone returns an independent copy of h.
func (h HitDice) Clone() HitDice {
	if h == nil {
		return nil
	}
	out := make(HitDice, len(h))
	for d, p := range h {
		out[d] = p
	}
	return out
}

// Grant adds n unspent dice of size d.
//
// Precondition: h is non-nil; n >= 0.
func (h HitDice) Grant(d DieType, n int) {
	p := h[d]
	p.Total += n
	h[d] = p
}

// Spend marks one die of size d as used.
//
// Postcondition: Returns an error and leaves h unchanged when no die of size
// d remains.
func (h HitDice) Spend(d DieType) error {
	p, ok := h[d]
	if !ok || p.Remaining() < 1 {
		return fmt.Errorf("character: no unspent %s hit dice", d)
	}
	p.Used++
	h[d] = p
	return nil
}

// Recover returns up to n spent dice, largest die size first, and reports
// how many were recovered.
//
// Postcondition: Every pool still satisfies 0 <= Used <= Total.
func (h HitDice) Recover(n int) int {
	recovered := 0
	for _, d := range h.Dice() {
		if n <= 0 {
			break
		}
		p := h[d]
		back := min(p.Used, n)
		p.Used -= back
		h[d] = p
		n -= back
		recovered += back
	}
	return recovered
}
