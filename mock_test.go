package logglobal

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

type (
	// mockEvent records fields in order, implementing only the required
	// methods and AddMessage
	mockEvent struct {
		logiface.UnimplementedEvent
		msg    string
		fields []mockField
		level  logiface.Level
	}

	mockField struct {
		Val any
		Key string
	}

	mockRecord struct {
		Message string
		Fields  []mockField
		Level   logiface.Level
	}

	// mockSink collects the records written by any number of loggers
	mockSink struct {
		records []mockRecord
		mu      sync.Mutex
	}

	mockGuard struct {
		err        error
		panicValue any
		closed     atomic.Int32
	}
)

var (
	mockL = logiface.LoggerFactory[*mockEvent]{}

	// compile time assertions

	_ logiface.Event              = (*mockEvent)(nil)
	_ logiface.Writer[*mockEvent] = (*mockSink)(nil)
	_ FlushGuard                  = (*mockGuard)(nil)
)

func (x *mockEvent) Level() logiface.Level {
	if x != nil {
		return x.level
	}
	return logiface.LevelDisabled
}

func (x *mockEvent) AddField(key string, val any) {
	x.fields = append(x.fields, mockField{Key: key, Val: val})
}

func (x *mockEvent) AddMessage(msg string) bool {
	x.msg = msg
	return true
}

func (x *mockSink) Write(event *mockEvent) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.records = append(x.records, mockRecord{
		Message: event.msg,
		Fields:  event.fields,
		Level:   event.level,
	})
	return nil
}

func (x *mockSink) Records() []mockRecord {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]mockRecord(nil), x.records...)
}

// Logger returns a new logger, writing to the receiver, with all levels
// enabled.
func (x *mockSink) Logger() *Logger {
	return mockL.New(
		mockL.WithEventFactory(mockL.NewEventFactoryFunc(func(level logiface.Level) *mockEvent {
			return &mockEvent{level: level}
		})),
		mockL.WithWriter(x),
		mockL.WithLevel(logiface.LevelTrace),
	).Logger()
}

func (x *mockGuard) Close() error {
	x.closed.Add(1)
	if x.panicValue != nil {
		panic(x.panicValue)
	}
	return x.err
}

func (x mockRecord) Field(key string) (any, bool) {
	for _, f := range x.Fields {
		if f.Key == key {
			return f.Val, true
		}
	}
	return nil, false
}
