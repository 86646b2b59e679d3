package sink

import "errors"

// Transport failures are wrapped around these sentinels so callers can
// classify them with errors.Is without inspecting adapter internals.
var (
	// ErrDeviceNotFound means no attached USB device matches the
	// requested vendor/product pair.
	ErrDeviceNotFound = errors.New("sink: no matching usb device")

	// ErrDeviceBusy means the USB interface could not be claimed, usually
	// because another process holds it or permissions are missing.
	ErrDeviceBusy = errors.New("sink: usb interface unavailable")

	// ErrTransfer means a bulk transfer failed: device unplugged, endpoint
	// stalled, or the per-write timeout elapsed.
	ErrTransfer = errors.New("sink: usb transfer failed")

	// ErrConnection means a network dial or send failed.
	ErrConnection = errors.New("sink: connection failed")
)
