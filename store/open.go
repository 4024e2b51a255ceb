package store

import (
	"context"
	"strings"
)

// Open returns the store described by location:
//
//	redis://[:password@]host:port/db   a Redis server
//	postgres://user@host/dbname        a PostgreSQL database
//	memory:                            a process local store
//	file:dir or dir                    a folder of JSON files
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedis(ctx, location)
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return NewPostgres(ctx, location)
	case location == "memory:":
		return NewMemory(), nil
	default:
		dir := strings.TrimPrefix(location, "file:")
		if dir == "" {
			dir = "."
		}
		return NewFile(dir), nil
	}
}
