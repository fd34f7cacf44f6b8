package alert

import (
	"context"
	"errors"
	"testing"

	"expmon/internal/entity"
)

type recordingPublisher struct {
	target string
	value  interface{}
	err    error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, channel string, v interface{}) (int64, error) {
	p.target, p.value = channel, v
	return 1, p.err
}

type recordingQueue struct {
	queue string
	ttl   uint32
	err   error
}

func (q *recordingQueue) PublishJSON(queue string, v interface{}, ttl uint32) (string, error) {
	q.queue, q.ttl = queue, ttl
	return "job-1", q.err
}

func TestRedisNotifierPublishesRecord(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewRedisNotifier(pub, "expiration:alerts")
	rec := &entity.AlertRecord{ID: "a1"}

	if err := n.Notify(context.Background(), rec); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if pub.target != "expiration:alerts" || pub.value != rec {
		t.Fatalf("published %v to %s", pub.value, pub.target)
	}
	if n.Name() != "redis:expiration:alerts" {
		t.Errorf("Name = %s", n.Name())
	}
}

func TestQueueNotifierWrapsErrors(t *testing.T) {
	q := &recordingQueue{err: errors.New("queue full")}
	n := NewQueueNotifier(q, "expiration_alert_notify", 3600)

	err := n.Notify(context.Background(), &entity.AlertRecord{ID: "a2"})
	if err == nil || !errors.Is(err, q.err) {
		t.Fatalf("Notify err = %v", err)
	}
	if q.queue != "expiration_alert_notify" || q.ttl != 3600 {
		t.Fatalf("published to %s ttl %d", q.queue, q.ttl)
	}
}
