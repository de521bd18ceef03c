package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// An asset on disk changed and was reloaded. Data is an *AssetEvent.
	EVENT_CODE_ASSET_RELOADED EventCode = 0x04

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
	Pressed bool
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered map[EventCode][]FnOnEvent
}

/**
 * Event system internal state. Events are fired and handled on the
 * rendering thread only.
 */
var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	if eventState.registered != nil {
		return false
	}
	eventState.registered = make(map[EventCode][]FnOnEvent)
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		// Listeners are dropped; a later initialize starts from scratch.
		eventState.registered = nil
	}
	return nil
}

/**
 * Register to listen for when events are sent with the provided code.
 * @param code The event code to listen for.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil || eventState.registered == nil || onEvent == nil {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @param context The event data, including its code.
 * @returns TRUE if handled, otherwise FALSE.
 */
func EventFire(context EventContext) bool {
	if eventState == nil || eventState.registered == nil {
		return false
	}
	for _, callback := range eventState.registered[context.Type] {
		if callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
