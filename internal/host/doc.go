// Package host adapts the host runtime's plugin contract onto the bridge.
//
// The runtime activates a plugin once with its project description and then
// calls the returned hooks for every lifecycle event. Plugin models that
// contract explicitly; NotifyPlugin implements it by loading the project
// configuration and wiring a bridge.Notifier into the Event hook. An inert
// activation returns the zero Hooks value, the Go form of an empty handler map.
//
// Two event sources drive the hooks from outside a JavaScript runtime: Stream
// reads newline-delimited JSON envelopes, and NewReceiver exposes the same
// envelopes over HTTP.
package host
