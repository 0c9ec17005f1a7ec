package server

import "sort"

const (
	TagHostiles = "hostiles"
	TagBosses   = "bosses"
)

// tagRegistry tracks live actors under categorical tags so the chat
// coordinator and external systems can enumerate them without scanning the
// whole world.
type tagRegistry struct {
	tags map[string]map[string]struct{}
}

func newTagRegistry() *tagRegistry {
	return &tagRegistry{tags: make(map[string]map[string]struct{})}
}

func (r *tagRegistry) register(tag, id string) {
	members, ok := r.tags[tag]
	if !ok {
		members = make(map[string]struct{})
		r.tags[tag] = members
	}
	members[id] = struct{}{}
}

func (r *tagRegistry) unregister(tag, id string) {
	if members, ok := r.tags[tag]; ok {
		delete(members, id)
	}
}

func (r *tagRegistry) unregisterAll(id string) {
	for _, members := range r.tags {
		delete(members, id)
	}
}

// members returns the tag's actor IDs in sorted order for deterministic
// iteration.
func (r *tagRegistry) members(tag string) []string {
	members, ok := r.tags[tag]
	if !ok || len(members) == 0 {
		return nil
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
