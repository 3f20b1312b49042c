package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDataChangedDeliversToHandler(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_deliver" {
			received <- e
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "test_deliver",
		Operation:      OpInsert,
		Document:       "doc",
	})

	select {
	case e := <-received:
		assert.Equal(t, OpInsert, e.Operation)
		assert.Equal(t, "doc", e.Document)
	case <-time.After(2 * time.Second):
		require.Fail(t, "handler không nhận được event")
	}
}

func TestEmitDataChangedRecoversPanic(t *testing.T) {
	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_panic" {
			panic("boom")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_panic" {
			received <- struct{}{}
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "test_panic",
		Operation:      OpDelete,
	})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		require.Fail(t, "handler thứ hai phải vẫn chạy dù handler đầu panic")
	}
}
