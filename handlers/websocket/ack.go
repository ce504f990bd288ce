package websocket

import (
	"fmt"
	"reflect"

	socketio "github.com/zishang520/socket.io/v2/socket"
)

// ackInvoker delivers a reply to a client-supplied ack callback.
type ackInvoker func(err error, payload map[string]any)

// extractAck splits a trailing ack callback off an event's argument list.
// Socket.io hands the callback through as an ordinary value, so the only way
// to recognize it is by its being a function.
func extractAck(datas []any) (ack ackInvoker, args []any) {
	if len(datas) == 0 {
		return nil, datas
	}

	candidate := datas[len(datas)-1]
	if candidate == nil {
		return nil, datas
	}
	value := reflect.ValueOf(candidate)
	if !value.IsValid() || value.Kind() != reflect.Func {
		return nil, datas
	}

	typ := value.Type()
	ack = func(err error, payload map[string]any) {
		value.Call(ackArgs(typ, err, payload))
	}
	return ack, datas[:len(datas)-1]
}

// ackArgs shapes (err, payload) to whatever signature the client callback
// has: single-parameter callbacks get the payload (or the error when one
// occurred), two-parameter callbacks get both, extra parameters are zeroed.
func ackArgs(typ reflect.Type, err error, payload map[string]any) []reflect.Value {
	numIn := typ.NumIn()
	args := make([]reflect.Value, numIn)

	for i := 0; i < numIn; i++ {
		var value any
		switch {
		case numIn == 1 && err != nil:
			value = err
		case numIn == 1:
			value = payload
		case i == 0:
			value = err
		case i == 1:
			value = payload
		}
		args[i] = coerce(value, typ.In(i))
	}
	return args
}

func coerce(value any, target reflect.Type) reflect.Value {
	if value == nil {
		return reflect.Zero(target)
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(target):
		return rv
	case rv.Type().ConvertibleTo(target):
		return rv.Convert(target)
	case target.Kind() == reflect.Interface && (target.NumMethod() == 0 || rv.Type().Implements(target)):
		return rv
	case target.Kind() == reflect.String:
		return reflect.ValueOf(fmt.Sprint(value)).Convert(target)
	}
	return reflect.Zero(target)
}

// respondWithAck invokes the ack when one was supplied and additionally
// emits the reply as its own event, so clients that did not pass a callback
// still hear the outcome.
func respondWithAck(socket *socketio.Socket, ack ackInvoker, event string, payload map[string]any, ackErr error) {
	if ack != nil {
		ack(ackErr, payload)
	}
	if event != "" && payload != nil {
		_ = socket.Emit(event, payload)
	}
}

func errPayload(err error) map[string]any {
	return map[string]any{
		"status": "error",
		"error":  err.Error(),
	}
}
