// Package redis connects to Redis and keeps shared rule documents there.
//
// Connect retries the initial ping using the settings of Config, which is
// read from REDIS_* environment variables by LoadConfig. Healthcheck wraps
// a client into a readiness probe.
//
// RuleStore stores named rule lists as JSON documents under a key prefix
// (REDIS_RULES_PREFIX, "formguard:rules:" by default), so every service
// instance validates with the same rules:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewRuleStore(client, cfg)
//
//	if err := store.Save(ctx, "signup", rules, 0); err != nil {
//		return err
//	}
//	rules, err := store.Load(ctx, "signup")
//	names, err := store.Names(ctx)
package redis
