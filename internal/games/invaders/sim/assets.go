package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// ErrUnknownTemplate is returned when a clone names a template that was never loaded.
var ErrUnknownTemplate = errors.New("unknown template")

// Assets produces fresh bodies from named templates.
type Assets interface {
	Clone(template string) (*Body, error)
}

// TemplateSet is the config-backed Assets implementation.
type TemplateSet struct {
	templates map[string]config.TemplateConfig
}

// NewTemplateSet copies the templates so later config edits do not leak in.
func NewTemplateSet(templates map[string]config.TemplateConfig) *TemplateSet {
	m := make(map[string]config.TemplateConfig, len(templates))
	for k, v := range templates {
		m[k] = v
	}
	return &TemplateSet{templates: m}
}

// Clone returns an unplaced body sized from the named template.
func (t *TemplateSet) Clone(template string) (*Body, error) {
	tpl, ok := t.templates[template]
	if !ok {
		return nil, fmt.Errorf("clone %q: %w", template, ErrUnknownTemplate)
	}
	return &Body{
		Template: template,
		HalfW:    tpl.HalfW,
		HalfH:    tpl.HalfH,
		Scale:    1,
	}, nil
}
