// Package storage provides the object storage backend behind the consistency probes.
//
// It wraps the MinIO Go client to talk to any S3-compatible endpoint (AWS S3, MinIO,
// Ceph RGW, ...) and adapts it to consistency.Handle, so the probe engine never
// depends on minio types.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Handle
//
// Handle maps the engine's operations onto S3 calls:
//
//   - Put: PutObject with a known length.
//   - Get: GetObject followed by Stat; NoSuchKey means the object is absent.
//   - Delete: RemoveObject; deleting a missing key succeeds.
//   - ListPage: ListObjects starting after the marker, cut at PageSize names.
//   - CreateContainer / DeleteContainer: MakeBucket (region = location) / RemoveBucket.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	handle := storage.NewHandle(client, storage.HandleOptions{PageSize: cfg.Storage.PageSize})
package storage
