package events

import "github.com/solterra/towny-catalog/internal/logging"

type MenuTracer struct{}

type ClickTracer struct{}

type TravelTracer struct{}

type CommandTracer struct{}

var (
	Menu    = MenuTracer{}
	Click   = ClickTracer{}
	Travel  = TravelTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Open(viewer, kind, town string, items int) {
	logging.Trace("menu.open", map[string]interface{}{
		"viewer": viewer,
		"kind":   kind,
		"town":   town,
		"items":  items,
	})
}

func (MenuTracer) Page(viewer, kind string, page, total int) {
	logging.Trace("menu.page", map[string]interface{}{
		"viewer": viewer,
		"kind":   kind,
		"page":   page,
		"total":  total,
	})
}

func (MenuTracer) Empty(viewer, kind, reason string) {
	logging.Trace("menu.empty", map[string]interface{}{"viewer": viewer, "kind": kind, "reason": reason})
}

func (MenuTracer) Close(viewer string) {
	logging.Trace("menu.close", map[string]interface{}{"viewer": viewer})
}

func (ClickTracer) Slot(viewer, kind string, slot int, outcome string) {
	logging.Trace("click.slot", map[string]interface{}{
		"viewer":  viewer,
		"kind":    kind,
		"slot":    slot,
		"outcome": outcome,
	})
}

func (ClickTracer) Stale(viewer, kind string, slot int) {
	logging.Trace("click.stale", map[string]interface{}{"viewer": viewer, "kind": kind, "slot": slot})
}

func (TravelTracer) Teleport(viewer, town, world string, x, y, z float64) {
	logging.Trace("travel.teleport", map[string]interface{}{
		"viewer": viewer,
		"town":   town,
		"world":  world,
		"x":      x,
		"y":      y,
		"z":      z,
	})
}

func (TravelTracer) Unavailable(viewer, town, world string) {
	logging.Trace("travel.unavailable", map[string]interface{}{"viewer": viewer, "town": town, "world": world})
}

func (TravelTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("travel.error", map[string]interface{}{"error": err.Error()})
}

func (CommandTracer) Execute(viewer, line string) {
	logging.Trace("command.execute", map[string]interface{}{"viewer": viewer, "line": line})
}

func (CommandTracer) Denied(viewer, line, permission string) {
	logging.Trace("command.denied", map[string]interface{}{"viewer": viewer, "line": line, "permission": permission})
}

func (CommandTracer) Error(line string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"line": line, "error": err.Error()})
}

func (CommandTracer) Complete(line string, candidates int) {
	logging.Trace("command.complete", map[string]interface{}{"line": line, "candidates": candidates})
}

func (CommandTracer) Queue(id, line string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "line": line})
}

func (CommandTracer) Result(id, line, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "line": line, "msg": msgType})
}
