// Package queue provides a Redis-backed item feed and result sink for
// workers.
//
// The worker loop itself owns no item queue: item supply is an external
// collaborator's concern. This package is that collaborator. Producers
// push Items onto a per-worker Redis list, Source adapts the list into a
// non-blocking worker.ItemSource suitable for the polling loop, and Sink
// adapts Redis pub/sub into a worker.ResultFunc so each iteration's
// result flows back to whoever submitted the job.
//
// # Redis Key Schema
//
//   - worker:<name>:queue  - List of pending items (LPUSH/RPOP)
//   - worker:<name>:health - String with 30s TTL for heartbeat
//   - results:<jobID>      - Pub/Sub channel for job results
//
// # Usage
//
// Feeding a worker from a queue:
//
//	client, err := queue.NewRedisClient(queue.RedisOptions{
//		URL: "redis://localhost:6379",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	w, err := worker.New(
//		worker.WithName("printer"),
//		worker.WithItemSource(queue.Source(client, queue.Name("printer"), logger)),
//		worker.WithResult(queue.Sink(client, "results", workerID, logger)),
//		worker.WithWork(printItem),
//	)
//
// Submitting work and collecting results:
//
//	_ = client.Push(ctx, queue.Name("printer"), queue.Item{
//		JobID:   jobID,
//		Payload: json.RawMessage(`"Hello world!"`),
//	})
//	results, _ := client.Subscribe(ctx, queue.ResultChannel(jobID))
//	for r := range results {
//		// ...
//	}
//
// # Thread Safety
//
// RedisClient is safe for concurrent use by multiple goroutines.
package queue
