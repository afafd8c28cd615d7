package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// Upload limits for listening audio.
const (
	MaxAudioSizeBytes = 100 << 20
)
