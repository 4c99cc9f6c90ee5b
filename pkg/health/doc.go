// Package health serves liveness and readiness probes.
//
// LivenessHandler reports that the process is running. ReadinessHandler runs
// named Checks concurrently under a shared timeout and answers 503 if any of
// them fails, for example when the Redis session store is unreachable:
//
//	mux.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text by default and JSON when the client sends
// Accept: application/json or ?format=json. JSON bodies list each check's
// status with a generic reason; the detailed error is logged only.
package health
