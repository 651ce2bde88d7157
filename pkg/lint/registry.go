package lint

import (
	"slices"
	"sync"
)

// Registry indexes rules by ID, name and alias. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	names   map[string]string // name to ID
	aliases map[string]string // alias to ID
	ids     []string          // sorted
}

func NewRegistry() *Registry {
	return &Registry{
		byID:    map[string]Rule{},
		names:   map[string]string{},
		aliases: map[string]string{},
	}
}

// DefaultRegistry holds the built-in rules. Package rules fills it from
// init.
//
//nolint:gochecknoglobals // rules register themselves here
var DefaultRegistry = NewRegistry()

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if old, ok := r.byID[id]; ok {
		delete(r.names, old.Name())
	} else {
		at, _ := slices.BinarySearch(r.ids, id)
		r.ids = slices.Insert(r.ids, at, id)
	}
	r.byID[id] = rule
	r.names[rule.Name()] = id
}

// RegisterAlias makes alias resolve to ruleID, the way markdownlint names
// such as "list-item-block-indent" do. ruleID may be registered later.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// lookup tries key as an ID, then through each index in turn.
func (r *Registry) lookup(key string, indexes ...map[string]string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return key, rule, true
	}
	for _, index := range indexes {
		if id, ok := index[key]; ok {
			if rule, ok := r.byID[id]; ok {
				return id, rule, true
			}
		}
	}
	return "", nil, false
}

// Get accepts an ID or a name. Use Resolve for user input, which may also
// be an alias.
func (r *Registry) Get(key string) (Rule, bool) {
	_, rule, ok := r.lookup(key, r.names)
	return rule, ok
}

func (r *Registry) GetByID(id string) (Rule, bool) {
	_, rule, ok := r.lookup(id)
	return rule, ok
}

func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	id, ok := r.names[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.GetByID(id)
}

// Resolve maps a config or CLI key to the rule's ID. An alias whose target
// is not registered does not resolve.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	return r.lookup(key, r.names, r.aliases)
}

func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.ids))
	for i, id := range r.ids {
		out[i] = r.byID[id]
	}
	return out
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.ids)
}

// Aliases returns the sorted aliases pointing at ruleID.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, id := range r.aliases {
		if id == ruleID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}
