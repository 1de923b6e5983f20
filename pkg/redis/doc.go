// Package redis connects to the Redis instance that backs the shared
// rate-limit store when several service replicas run behind one load
// balancer.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	checks := httpserver.Checks{"redis": redis.Healthcheck(client)}
package redis
