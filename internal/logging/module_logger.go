package logging

import (
	"github.com/goliatone/go-sitedraft/pkg/interfaces"
)

const (
	rootModule      = "sitedraft"
	draftsModule    = "sitedraft.drafts"
	generatorModule = "sitedraft.generator"
	previewModule   = "sitedraft.preview"
	commitModule    = "sitedraft.commit"
	httpModule      = "sitedraft.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DraftsLogger returns the logger namespace reserved for the draft service.
func DraftsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, draftsModule)
}

// GeneratorLogger returns the logger namespace reserved for config generation.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// PreviewLogger returns the logger namespace reserved for preview rendering.
func PreviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, previewModule)
}

// CommitLogger returns the logger namespace reserved for the commit coordinator.
func CommitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commitModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}
