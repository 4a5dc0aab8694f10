package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/fastygo/careconnect/domain"
)

// CommandHandler applies a named intent. payload is the raw JSON sent by the client.
type CommandHandler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// QueryHandler returns a named read model.
type QueryHandler func(ctx context.Context) (interface{}, error)

// Dispatcher routes named intents and queries to the view use cases, so clients
// can drive every view through one endpoint.
type Dispatcher struct {
	cmdHandlers map[string]CommandHandler
	qryHandlers map[string]QueryHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cmdHandlers: make(map[string]CommandHandler),
		qryHandlers: make(map[string]QueryHandler),
	}
}

func (d *Dispatcher) RegisterCommand(name string, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmdHandlers[name] = handler
}

func (d *Dispatcher) RegisterQuery(name string, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.qryHandlers[name] = handler
}

func (d *Dispatcher) ExecuteCommand(ctx context.Context, name string, payload json.RawMessage) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.cmdHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.WrapError(domain.ErrCodeNotFound, domain.ErrUnknownIntent.Message, errorName(name))
	}
	return handler(ctx, payload)
}

func (d *Dispatcher) ExecuteQuery(ctx context.Context, name string) (interface{}, error) {
	d.mu.RLock()
	handler, ok := d.qryHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.WrapError(domain.ErrCodeNotFound, domain.ErrUnknownQuery.Message, errorName(name))
	}
	return handler(ctx)
}

// Commands lists the registered intent names in sorted order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.cmdHandlers))
	for name := range d.cmdHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type errorName string

func (e errorName) Error() string { return string(e) }

// DecodePayload unmarshals an intent payload, mapping malformed JSON to
// domain.ErrInvalidPayload.
func DecodePayload(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return domain.ErrInvalidPayload
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err)
	}
	return nil
}
