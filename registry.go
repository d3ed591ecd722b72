package argot

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/marrec/argot/types"
)

// Registry owns the Argument specifications of one parser level: an
// ordered table keyed by destination plus an index from every alias (and
// the destination itself) to its specification.
type Registry struct {
	specs  *orderedmap.OrderedMap[string, *Argument]
	lookup map[string]string
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		specs:  orderedmap.New[string, *Argument](),
		lookup: map[string]string{},
	}
}

// Register validates and indexes an argument specification. A collision
// with a live specification's destination or alias fails with
// ErrDuplicateArgument unless reset is true, in which case every
// colliding specification is removed first. The destinations of removed
// specifications are returned so the caller can clear their Namespace
// entries.
func (r *Registry) Register(arg *Argument, reset bool) ([]string, error) {
	if err := arg.validate(); err != nil {
		return nil, err
	}

	dest := arg.Destination()
	keys := make([]string, 0, len(arg.Names)+1)
	keys = append(keys, dest)
	keys = append(keys, arg.Names...)

	colliding := map[string]struct{}{}
	for _, key := range keys {
		if owner, found := r.lookup[key]; found {
			colliding[owner] = struct{}{}
		}
	}
	if len(colliding) > 0 && !reset {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateArgument, dest)
	}

	if arg.IsPositional() {
		for _, prior := range r.Positionals() {
			if _, gone := colliding[prior.Destination()]; gone {
				continue
			}
			if prior.Nargs == types.Remaining {
				return nil, fmt.Errorf("%w: no positional may follow %q which consumes the rest", ErrInvalidArgument, prior.Destination())
			}
		}
	}

	displaced := make([]string, 0, len(colliding))
	for owner := range colliding {
		r.remove(owner)
		displaced = append(displaced, owner)
	}
	sort.Strings(displaced)

	r.specs.Set(dest, arg)
	for _, key := range keys {
		r.lookup[key] = dest
	}

	return displaced, nil
}

func (r *Registry) remove(dest string) {
	arg, found := r.specs.Get(dest)
	if !found {
		return
	}
	for _, name := range arg.Names {
		if r.lookup[name] == dest {
			delete(r.lookup, name)
		}
	}
	delete(r.lookup, dest)
	r.specs.Delete(dest)
}

// LookupByToken returns the specification whose alias matches token.
func (r *Registry) LookupByToken(token string) (*Argument, bool) {
	dest, found := r.lookup[token]
	if !found {
		return nil, false
	}

	return r.specs.Get(dest)
}

// Lookup returns the specification registered under a destination name.
func (r *Registry) Lookup(dest string) (*Argument, bool) {
	return r.specs.Get(dest)
}

// CopyFrom deep-clones every specification of parent into r, preserving
// declaration order. Collisions with specifications already present fail
// with ErrDuplicateArgument; copying is meant for freshly constructed
// registries. Mutating r afterwards never affects parent.
func (r *Registry) CopyFrom(parent *Registry) error {
	for pair := parent.specs.Oldest(); pair != nil; pair = pair.Next() {
		if _, err := r.Register(pair.Value.clone(), false); err != nil {
			return err
		}
	}

	return nil
}

// All returns every specification in declaration order.
func (r *Registry) All() []*Argument {
	args := make([]*Argument, 0, r.specs.Len())
	for pair := r.specs.Oldest(); pair != nil; pair = pair.Next() {
		args = append(args, pair.Value)
	}

	return args
}

// Named returns the flag-identified specifications in declaration order.
func (r *Registry) Named() []*Argument {
	var args []*Argument
	for pair := r.specs.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.IsPositional() {
			args = append(args, pair.Value)
		}
	}

	return args
}

// Positionals returns the position-identified specifications in
// declaration order.
func (r *Registry) Positionals() []*Argument {
	var args []*Argument
	for pair := r.specs.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsPositional() {
			args = append(args, pair.Value)
		}
	}

	return args
}

// Len returns the number of registered specifications.
func (r *Registry) Len() int {
	return r.specs.Len()
}
