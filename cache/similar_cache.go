package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"EchoFM/logger"
	"EchoFM/model"

	"github.com/go-redis/redis/v8"
)

// similarTrackTTL 相似歌曲查询结果的缓存时间
const similarTrackTTL = time.Hour

// similarKey builds the cache key for one similarity lookup.
func similarKey(artist, title string, limit int) string {
	return fmt.Sprintf("similar:%s|%s|%d",
		strings.ToLower(strings.TrimSpace(artist)),
		strings.ToLower(strings.TrimSpace(title)),
		limit)
}

// GetSimilarTracks returns a cached similarity lookup. A miss, a decode
// failure or an unavailable Redis client all return ok=false so the caller
// falls through to the provider.
func GetSimilarTracks(ctx context.Context, artist, title string, limit int) ([]model.EnrichedTrack, bool) {
	if RedisClient == nil {
		return nil, false
	}

	data, err := RedisClient.Get(ctx, similarKey(artist, title, limit)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("similar cache read failed", logger.ErrorField(err))
		}
		return nil, false
	}

	var tracks []model.EnrichedTrack
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		logger.Warn("similar cache decode failed", logger.ErrorField(err))
		return nil, false
	}
	return tracks, true
}

// SetSimilarTracks caches one similarity lookup. Failures only cost the
// cache entry, never the request.
func SetSimilarTracks(ctx context.Context, artist, title string, limit int, tracks []model.EnrichedTrack) {
	if RedisClient == nil {
		return
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		logger.Warn("similar cache encode failed", logger.ErrorField(err))
		return
	}
	if err := RedisClient.Set(ctx, similarKey(artist, title, limit), data, similarTrackTTL).Err(); err != nil {
		logger.Warn("similar cache write failed", logger.ErrorField(err))
	}
}
