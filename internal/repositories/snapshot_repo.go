package repositories

// SnapshotRepository is the local key-value store behind session state
// (cart and user snapshots), JSON-encoded by the callers. Load returns
// (nil, nil) for an absent key: missing state is the empty default, not
// an error.
type SnapshotRepository interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
}
