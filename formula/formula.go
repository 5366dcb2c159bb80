// Package formula holds the table of chord shapes the engine matches
// against. A Library is built once and never mutated.
package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/fretnot/model"
)

var ErrUnknownFormula = errors.New("unknown chord formula")

type Library struct {
	formulas []model.ChordFormula
	byName   map[string]int
}

// New copies formulas into a Library. Lookups by name and by alias are
// case sensitive for aliases ("M" and "m" differ) and case insensitive for names.
func New(formulas []model.ChordFormula) *Library {
	l := &Library{
		formulas: make([]model.ChordFormula, 0, len(formulas)),
		byName:   make(map[string]int),
	}
	for _, f := range formulas {
		f = clone(f)
		idx := len(l.formulas)
		l.formulas = append(l.formulas, f)
		if _, ok := l.byName[strings.ToLower(f.Name)]; !ok {
			l.byName[strings.ToLower(f.Name)] = idx
		}
	}
	return l
}

func Default() *Library {
	return New(defaultFormulas)
}

func clone(f model.ChordFormula) model.ChordFormula {
	return model.ChordFormula{
		Name:      f.Name,
		Intervals: append([]string(nil), f.Intervals...),
		Optional:  append([]string(nil), f.Optional...),
		Aliases:   append([]string(nil), f.Aliases...),
	}
}

// All returns a copy of the formulas in library order.
func (l *Library) All() []model.ChordFormula {
	res := make([]model.ChordFormula, 0, len(l.formulas))
	for _, f := range l.formulas {
		res = append(res, clone(f))
	}
	return res
}

func (l *Library) Len() int {
	return len(l.formulas)
}

// Get finds a formula by name ("Major", "minor 7") or alias ("maj7", "m").
func (l *Library) Get(nameOrAlias string) (model.ChordFormula, error) {
	if idx, ok := l.byName[strings.ToLower(nameOrAlias)]; ok {
		return clone(l.formulas[idx]), nil
	}
	for _, f := range l.formulas {
		for _, alias := range f.Aliases {
			if alias == nameOrAlias {
				return clone(f), nil
			}
		}
	}
	return model.ChordFormula{}, fmt.Errorf("%w: %q", ErrUnknownFormula, nameOrAlias)
}

// Essential returns the intervals of f that must sound for a match: all of
// them except the root and the optional ones.
func Essential(f model.ChordFormula) []string {
	var res []string
	for _, interval := range f.Intervals {
		if interval == "1P" || f.IsOptional(interval) {
			continue
		}
		res = append(res, interval)
	}
	return res
}
