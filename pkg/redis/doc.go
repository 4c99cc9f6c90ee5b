// Package redis opens the go-redis client backing the Redis session store.
//
// Open validates the URL scheme (redis:// or rediss://), applies pool and
// timeout settings, and retries the first PING with linear backoff so the
// service can start alongside a Redis that is still booting:
//
//	client, err := redis.Open(ctx, cfg.Redis.URL, cfg.Redis.Options()...)
//	if err != nil {
//		return err
//	}
//
// Healthcheck plugs into the readiness endpoint and Shutdown into the
// server's shutdown hooks. Errors never include the connection URL, which may
// carry a password.
package redis
