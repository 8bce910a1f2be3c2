package redis

const (
	// KeyPrefix namespaces every key written by reelpanel
	KeyPrefix = "reelpanel:"
	// KeyReels holds the whole serialized reel collection
	KeyReels = KeyPrefix + "reels"
)

// ReelsKey returns the Redis key for the reel collection.
// An optional namespace lets several panels share one Redis DB.
func ReelsKey(namespace string) string {
	if namespace == "" {
		return KeyReels
	}
	return KeyPrefix + namespace + ":reels"
}
