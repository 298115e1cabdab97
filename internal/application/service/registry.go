package service

import (
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

var _ output.CheckRegistry = (*CheckRegistryImpl)(nil)

// CheckRegistryImpl keeps checks in registration order, which is the order
// they run and appear in reports. Registering a name twice replaces the
// earlier check in place.
type CheckRegistryImpl struct {
	order  []entity.CheckName
	checks map[entity.CheckName]output.CheckPort
}

func NewCheckRegistry() *CheckRegistryImpl {
	return &CheckRegistryImpl{
		checks: make(map[entity.CheckName]output.CheckPort),
	}
}

func (r *CheckRegistryImpl) Register(check output.CheckPort) {
	name := check.Name()
	if _, exists := r.checks[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checks[name] = check
}

func (r *CheckRegistryImpl) Get(name entity.CheckName) (output.CheckPort, bool) {
	check, ok := r.checks[name]
	return check, ok
}

func (r *CheckRegistryImpl) All() []output.CheckPort {
	result := make([]output.CheckPort, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.checks[name])
	}
	return result
}
