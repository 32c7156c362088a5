package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"launderette-finder/src/types"
	"launderette-finder/src/utils"
)

// Reporter forwards analytics events to a collection endpoint. Delivery is
// best-effort: failures are logged and swallowed, never surfaced to the
// caller, and events racing to the backend may arrive in any order.
type Reporter struct {
	endpoint string
	client   *http.Client
	logger   *utils.Logger
	wg       sync.WaitGroup
}

func NewReporter(endpoint string, logger *utils.Logger) *Reporter {
	return &Reporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

// Report serializes the event and posts it asynchronously. It returns
// immediately; the caller is never told whether delivery succeeded.
func (r *Reporter) Report(event types.AnalyticsEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn("analytics: marshal %s event: %v", event.Type, err)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.post(body, event.Type)
	}()
}

func (r *Reporter) post(body []byte, eventType string) {
	resp, err := r.client.Post(r.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		r.logger.Warn("analytics: post %s event: %v", eventType, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("analytics: %s event rejected with status %d", eventType, resp.StatusCode)
	}
}

// Flush waits for in-flight posts to finish. Used on shutdown and in tests.
func (r *Reporter) Flush() {
	r.wg.Wait()
}
