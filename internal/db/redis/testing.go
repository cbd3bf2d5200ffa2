package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an externally built (usually mocked) client.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
