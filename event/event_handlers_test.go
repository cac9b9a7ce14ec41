package event_test

import (
	"testing"

	"rugcraft/event"

	. "github.com/onsi/gomega"
)

func TestInvokeHandlers(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should invoke every registered handler and collect results", func(t *testing.T) {
		defer func() { event.EventHandlers = nil }()

		var seen []string
		event.EventHandlers = []event.EventHandler{
			func(e *event.EventRecord) *event.EventHandleResult {
				seen = append(seen, "first")
				return &event.EventHandleResult{Success: true, HandlerIdentifier: "first"}
			},
			func(e *event.EventRecord) *event.EventHandleResult {
				seen = append(seen, "second")
				return nil
			},
			func(e *event.EventRecord) *event.EventHandleResult {
				seen = append(seen, "third")
				return &event.EventHandleResult{Success: false, Message: "boom", HandlerIdentifier: "third"}
			},
		}

		record := event.EventRecord{Event: event.Event{SourceType: event.SourceTypeWorkOrder, SourceId: 1}}
		results := event.InvokeHandlersFunc(&record)
		Expect(seen).To(Equal([]string{"first", "second", "third"}))
		Expect(results).To(Equal([]event.EventHandleResult{
			{Success: true, HandlerIdentifier: "first"},
			{Success: false, Message: "boom", HandlerIdentifier: "third"},
		}))
	})

	t.Run("should return empty result without handlers", func(t *testing.T) {
		event.EventHandlers = nil
		record := event.EventRecord{}
		Expect(event.InvokeHandlersFunc(&record)).To(Equal([]event.EventHandleResult{}))
	})
}
