package check

import (
	"context"

	"github.com/jonwraymond/dockwatch/broker"
)

// placeholderQueue is reported when the broker has no queues yet, so the
// queue depth metric is emitted rather than omitted.
const placeholderQueue = "default"

// BrokerAPI is the slice of the management interface the broker health
// check consumes.
type BrokerAPI interface {
	// Overview fetches the broker overview.
	Overview(ctx context.Context) (broker.Overview, error)

	// ListQueues fetches the queue listing.
	ListQueues(ctx context.Context) ([]broker.Queue, error)
}

// BrokerChecker queries the RabbitMQ management interface for an overview
// and queue listing.
type BrokerChecker struct {
	api BrokerAPI
}

// NewBrokerChecker creates a new broker health checker.
func NewBrokerChecker(api BrokerAPI) *BrokerChecker {
	return &BrokerChecker{api: api}
}

// Kind returns KindBrokerHealth.
func (c *BrokerChecker) Kind() Kind {
	return KindBrokerHealth
}

// Check fetches the overview and queue listing. Any unreachable or non-200
// response resolves into an Error result.
func (c *BrokerChecker) Check(ctx context.Context) Result {
	overview, err := c.api.Overview(ctx)
	if err != nil {
		return Errorf(KindBrokerHealth, "rabbitmq overview: %v", err)
	}

	queues, err := c.api.ListQueues(ctx)
	if err != nil {
		return Errorf(KindBrokerHealth, "rabbitmq queues: %v", err)
	}

	depths := make([]QueueDepth, 0, len(queues))
	for _, q := range queues {
		depths = append(depths, QueueDepth{Name: q.Name, Messages: q.Messages})
	}
	if len(depths) == 0 {
		depths = append(depths, QueueDepth{Name: placeholderQueue, Messages: 0})
	}

	result := Healthy(KindBrokerHealth, "rabbitmq is running").
		WithMetrics(map[string]float64{
			"connections": float64(overview.Connections),
			"queues":      float64(overview.Queues),
			"exchanges":   float64(overview.Exchanges),
		}).
		WithValues(map[string]string{
			"version":        overview.Version,
			"erlang_version": overview.ErlangVersion,
		})
	result.Queues = depths
	return result
}
