package templates

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/logging"
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
	slug "github.com/goliatone/go-slug"
)

// Registry resolves industry codes to template identities and serves the
// compiled definitions themselves. Lookups never fail: unknown industries and
// unknown template ids fall back to the default template.
type Registry interface {
	LookupByIndustry(code string) (templateID string, templateVersion int)
	Load(templateID string) *TemplateDefinition
	List() []*TemplateDefinition
}

// MemoryRegistry is the compiled-in registry implementation. Definitions are
// immutable after construction; reads need no locking beyond the registration
// barrier.
type MemoryRegistry struct {
	mu       sync.RWMutex
	defs     map[string]*TemplateDefinition
	industry map[string]string
	logger   interfaces.Logger
}

// RegistryOption customizes registry construction.
type RegistryOption func(*MemoryRegistry)

// WithRegistryLogger attaches a module logger.
func WithRegistryLogger(logger interfaces.Logger) RegistryOption {
	return func(r *MemoryRegistry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewMemoryRegistry validates and indexes the given definitions. The set must
// include a definition with TemplateID "default"; the industry index maps
// industry codes onto registered template ids.
func NewMemoryRegistry(defs []*TemplateDefinition, industryIndex map[string]string, opts ...RegistryOption) (*MemoryRegistry, error) {
	registry := &MemoryRegistry{
		defs:     make(map[string]*TemplateDefinition, len(defs)),
		industry: make(map[string]string, len(industryIndex)),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(registry)
	}

	for _, def := range defs {
		if err := ValidateDefinition(def); err != nil {
			return nil, err
		}
		if !slug.IsValid(def.TemplateID) {
			return nil, fmt.Errorf("%w: template id %q is not slug-safe", ErrDefinitionInvalid, def.TemplateID)
		}
		if _, exists := registry.defs[def.TemplateID]; exists {
			return nil, fmt.Errorf("%w: duplicate template id %q", ErrDefinitionInvalid, def.TemplateID)
		}
		registry.defs[def.TemplateID] = def
	}

	if _, ok := registry.defs[DefaultTemplateID]; !ok {
		return nil, fmt.Errorf("%w: registry requires a %q template", ErrDefinitionInvalid, DefaultTemplateID)
	}

	for code, templateID := range industryIndex {
		code = strings.ToLower(strings.TrimSpace(code))
		if !domain.KnownIndustry(code) {
			return nil, fmt.Errorf("%w: industry index references unknown code %q", ErrDefinitionInvalid, code)
		}
		if _, ok := registry.defs[templateID]; !ok {
			return nil, fmt.Errorf("%w: industry %q maps to unregistered template %q", ErrDefinitionInvalid, code, templateID)
		}
		registry.industry[code] = templateID
	}

	return registry, nil
}

// LookupByIndustry resolves the template identity for an industry code. Codes
// without a mapping resolve to the default template.
func (r *MemoryRegistry) LookupByIndustry(code string) (string, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code = strings.ToLower(strings.TrimSpace(code))
	templateID, ok := r.industry[code]
	if !ok {
		r.logger.Debug("industry has no template mapping, using default", "industry", code)
		templateID = DefaultTemplateID
	}
	def := r.defs[templateID]
	return def.TemplateID, def.TemplateVersion
}

// Load returns the definition for a template id, falling back to the default
// template when the id is unknown. Callers always get a usable definition.
func (r *MemoryRegistry) Load(templateID string) *TemplateDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if def, ok := r.defs[strings.TrimSpace(templateID)]; ok {
		return def
	}
	r.logger.Warn("unknown template id, falling back to default", "template_id", templateID)
	return r.defs[DefaultTemplateID]
}

// List returns every registered definition sorted by template id.
func (r *MemoryRegistry) List() []*TemplateDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*TemplateDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateID < out[j].TemplateID })
	return out
}
