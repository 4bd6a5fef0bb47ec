// Package consistency provides the probe engine that measures how often an object
// storage backend fails to observe its own recent writes.
//
// The engine is handed two storage handles: a write handle through which every
// mutation is issued, and a read handle through which every verification is made.
// When both handles resolve to the same replica the backend should look strongly
// consistent; when they route to different replicas, replication lag shows up as
// missing, stale, or resurrected objects.
//
// # Components
//
//   - Payload: a lazily generated, fixed-length byte stream filled with one value.
//   - Handle: the narrow capability interface any backend client is adapted behind.
//   - ListAll: drains a paginated listing into a set of object names.
//   - Runner: executes the five probes and assembles a Report.
//
// # Probes
//
//   - read after create: put, then get; counted when the object is absent.
//   - read after delete: put, delete, then get; counted when the object is present.
//   - read after overwrite: put A, put B, then get; counted when A is returned.
//   - list after create: put, then list; counted when the name is not listed.
//   - list after delete: put, delete, then list; counted when the name is listed.
//
// Iterations and probes run strictly one after another. The signal of every
// iteration is the gap between a write returning and the following read being
// issued, so the runner never overlaps storage calls.
//
// # Usage
//
//	runner, err := consistency.NewRunner(writeHandle, readHandle, "container", consistency.Options{
//	    Iterations: 100,
//	    ObjectSize: 1,
//	    Logger:     logg,
//	})
//	if err != nil {
//	    return err
//	}
//	report, err := runner.Run(ctx)
package consistency
