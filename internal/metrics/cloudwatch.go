package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace             = "Jukebox/API"
	httpStatusServerError = 500
	cloudwatchTimeout     = 5 * time.Second
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// metric is one value to publish; dimensions are shared per event
type metric struct {
	name  string
	value float64
	unit  types.StandardUnit
}

func count(name string, n float64) metric {
	return metric{name: name, value: n, unit: types.StandardUnitCount}
}

func millis(name string, d time.Duration) metric {
	return metric{name: name, value: float64(d.Milliseconds()), unit: types.StandardUnitMilliseconds}
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	name := "APIRequests"
	if statusCode >= httpStatusServerError {
		name = "APIErrors"
	}
	m.publish(map[string]string{"Endpoint": endpoint}, count(name, 1), millis("APILatency", duration))
}

// RecordGenerationAttempt records the latency and token usage of one provider attempt
func (m *Client) RecordGenerationAttempt(model string, duration time.Duration, success bool, inputTokens, outputTokens int) {
	metrics := []metric{millis("ProviderAttemptDuration", duration)}
	if success {
		metrics = append(metrics,
			count("ProviderTokens/Input", float64(inputTokens)),
			count("ProviderTokens/Output", float64(outputTokens)),
		)
	}
	m.publish(map[string]string{"Model": model, "Success": boolToString(success)}, metrics...)
}

// RecordFallback counts requests answered from the fallback catalog
func (m *Client) RecordFallback() {
	m.publish(nil, count("FallbackSongs", 1))
}

// RecordPrioritization counts settled prioritizations, split by simulation
func (m *Client) RecordPrioritization(simulated bool, duration time.Duration) {
	m.publish(map[string]string{"Simulated": boolToString(simulated)},
		count("Prioritizations", 1),
		millis("PaymentDuration", duration),
	)
}

// publish sends one event's metrics in a single PutMetricData call without
// blocking the caller
func (m *Client) publish(dims map[string]string, metrics ...metric) {
	if m == nil || !m.enabled || m.client == nil {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}
	for name, value := range dims {
		dimensions = append(dimensions, types.Dimension{Name: aws.String(name), Value: aws.String(value)})
	}

	now := time.Now()
	data := make([]types.MetricDatum, 0, len(metrics))
	for _, mt := range metrics {
		data = append(data, types.MetricDatum{
			MetricName: aws.String(mt.name),
			Value:      aws.Float64(mt.value),
			Unit:       mt.unit,
			Timestamp:  aws.Time(now),
			Dimensions: dimensions,
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeout)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(namespace),
			MetricData: data,
		})
		if err != nil {
			log.Printf("Failed to publish %d CloudWatch metrics (%s): %v", len(data), *data[0].MetricName, err)
		}
	}()
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
