package main

import "net/http"

// healthCheckHandler reports the build and whether the database answers.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := "available"
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("healthcheck could not reach the database", "error", err.Error())
			status = "degraded"
		}
	}

	env := envelope{
		"status": status,
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
		},
	}

	if err := app.writeJSON(w, http.StatusOK, env, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
