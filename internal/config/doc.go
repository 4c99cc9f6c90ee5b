// Package config loads the service configuration.
//
// Values come from three layers, later ones winning: Default, a YAML file
// holding non-secret settings, and environment variables. The OAuth client
// secret and the session secret are read from the environment only and are
// typed as Secret, which prints as a placeholder. SENTRY_DSN is likewise
// environment-only.
package config
