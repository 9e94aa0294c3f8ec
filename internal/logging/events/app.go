package events

import "github.com/solterra/towny-catalog/internal/logging"

type AppTracer struct{}

type SettingsTracer struct{}

type RegistryTracer struct{}

var (
	App      = AppTracer{}
	Settings = SettingsTracer{}
	Registry = RegistryTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (SettingsTracer) Loaded(path string, values map[string]bool) {
	logging.Trace("settings.loaded", map[string]interface{}{"path": path, "values": values})
}

func (SettingsTracer) ReloadFailed(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("settings.reload-failed", map[string]interface{}{"path": path, "error": err.Error()})
}

func (RegistryTracer) Seeded(path string, towns, residents int) {
	logging.Trace("registry.seeded", map[string]interface{}{"path": path, "towns": towns, "residents": residents})
}

func (RegistryTracer) Refreshed(towns int) {
	logging.Trace("registry.refresh", map[string]interface{}{"towns": towns})
}

func (RegistryTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("registry.error", map[string]interface{}{"error": err.Error()})
}
