package usecase

import (
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// snapshot is an immutable view of the capability registry. A new snapshot is
// built after every admin mutation and swapped in atomically; readers never
// observe a partially applied change.
type snapshot struct {
	ordered []*registryDomain.Capability
	byName  map[string]*registryDomain.Capability
}

// newSnapshot builds a snapshot from capabilities already sorted in insertion order.
func newSnapshot(capabilities []*registryDomain.Capability) *snapshot {
	s := &snapshot{
		ordered: capabilities,
		byName:  make(map[string]*registryDomain.Capability, len(capabilities)),
	}
	for _, capability := range capabilities {
		s.byName[capability.Name] = capability
	}
	return s
}

// get returns the capability with the given name, or nil.
func (s *snapshot) get(name string) *registryDomain.Capability {
	return s.byName[name]
}

// list returns all capabilities in insertion order. Callers must not mutate
// the returned slice or its elements.
func (s *snapshot) list() []*registryDomain.Capability {
	return s.ordered
}

// findByPath resolves the first capability (in insertion order) whose endpoint
// patterns match the request path.
func (s *snapshot) findByPath(path string) *registryDomain.Capability {
	for _, capability := range s.ordered {
		if capability.MatchesPath(path) {
			return capability
		}
	}
	return nil
}
