package cache

import (
	"context"
	"time"

	"turkish_shop_backend/internal/database"
)

const RoleCacheTTL = 15 * time.Minute

// GetCachedRole returns the cached role for a user, or "" on miss. Cache
// errors read as misses so the gate falls through to the store.
func GetCachedRole(ctx context.Context, userID string) string {
	role, err := database.Redis.Get(ctx, "role:"+userID).Result()
	if err != nil {
		return ""
	}
	return role
}

// SetCachedRole caches a role lookup for RoleCacheTTL.
func SetCachedRole(ctx context.Context, userID, role string) {
	database.Redis.Set(ctx, "role:"+userID, role, RoleCacheTTL)
}

// InvalidateRole drops the cached role, e.g. after an admin demotes a user.
func InvalidateRole(ctx context.Context, userID string) {
	database.Redis.Del(ctx, "role:"+userID)
}
