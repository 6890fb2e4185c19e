// Package logger wraps zerolog with the structured-field conventions used
// across sporeplan: a service tag, component-scoped child loggers and
// map-based fields.
//
//	log := logger.NewDefault("sporeplan").WithComponent("planner")
//	log.Info("batch planned", logger.Fields("recipe", name, "tasks", n))
package logger
