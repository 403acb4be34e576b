// Package pluginapi defines the stable contract implemented by hazard-class
// plugins. Plugins contribute validation rules and JSON Schema fragments; the
// host adapts them onto its internal registry.
package pluginapi

import "chemcore/pkg/domain"

// Registry receives plugin contributions during installation.
type Registry interface {
	RegisterSchema(entity string, schema map[string]any)
	RegisterRule(rule domain.Rule)
}

// Plugin is the entry point implemented by hazard-class modules.
type Plugin interface {
	Name() string
	Version() string
	Register(Registry) error
}

// Version is the plugin API contract version.
const Version = "v1"
