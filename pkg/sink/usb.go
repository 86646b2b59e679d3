package sink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/gousb"
)

// DefaultUSBTimeout bounds a single bulk write when the caller passes a
// zero timeout.
const DefaultUSBTimeout = 5 * time.Second

// bulkWriter is the slice of gousb.OutEndpoint the write path needs,
// narrowed so tests can script transfer results.
type bulkWriter interface {
	WriteContext(ctx context.Context, p []byte) (int, error)
}

// USBSink writes to the bulk-OUT endpoint of a USB printer. The sink holds
// an exclusive claim on the device interface for its lifetime; a second
// claim on the same interface fails with ErrDeviceBusy until Close.
type USBSink struct {
	vendorID  uint16
	productID uint16
	timeout   time.Duration

	// Bulk-IN endpoint address, unused for now but kept for a status
	// read path.
	endpointIn  int
	endpointOut int

	usbCtx *gousb.Context
	dev    *gousb.Device
	cfg    *gousb.Config
	intf   *gousb.Interface
	out    bulkWriter
}

// NewUSBSink opens the first attached device matching vendorID/productID
// (libusb enumeration order decides ties), detaches a kernel driver when
// one is bound, and claims the given interface of configuration 1. The
// timeout bounds each Write call.
func NewUSBSink(vendorID, productID uint16, iface, endpointIn, endpointOut int, timeout time.Duration) (*USBSink, error) {
	if timeout <= 0 {
		timeout = DefaultUSBTimeout
	}
	// endpointIn is only stored until a read path exists, but an address
	// without the IN direction bit is a config mistake worth catching now.
	if endpointIn != 0 && endpointIn&0x80 == 0 {
		return nil, fmt.Errorf("endpoint 0x%02x is not an IN endpoint", endpointIn)
	}

	usbCtx := gousb.NewContext()
	dev, err := usbCtx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		usbCtx.Close()
		return nil, mapUSBError(fmt.Sprintf("open device %04x:%04x", vendorID, productID), err)
	}
	if dev == nil {
		usbCtx.Close()
		return nil, fmt.Errorf("device %04x:%04x: %w", vendorID, productID, ErrDeviceNotFound)
	}

	// Some platforms have no kernel driver bound to begin with; a failed
	// detach request is not fatal.
	_ = dev.SetAutoDetach(true)

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		usbCtx.Close()
		return nil, mapClaimError("select configuration 1", err)
	}

	intf, err := cfg.Interface(iface, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		usbCtx.Close()
		return nil, mapClaimError(fmt.Sprintf("claim interface %d", iface), err)
	}

	out, err := intf.OutEndpoint(endpointOut)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		usbCtx.Close()
		return nil, mapUSBError(fmt.Sprintf("resolve endpoint 0x%02x", endpointOut), err)
	}

	return &USBSink{
		vendorID:    vendorID,
		productID:   productID,
		timeout:     timeout,
		endpointIn:  endpointIn,
		endpointOut: endpointOut,
		usbCtx:      usbCtx,
		dev:         dev,
		cfg:         cfg,
		intf:        intf,
		out:         out,
	}, nil
}

// Write sends p to the bulk-OUT endpoint, looping on short transfers until
// the whole buffer is on the wire. A short transfer must never surface as
// a silent success, so the count is earned, not assumed. The configured
// timeout covers the whole call.
func (s *USBSink) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	total := 0
	for total < len(p) {
		n, err := s.out.WriteContext(ctx, p[total:])
		total += n
		if err != nil {
			return total, fmt.Errorf("bulk write to 0x%02x: %w: %w", s.endpointOut, ErrTransfer, err)
		}
	}
	return total, nil
}

// Flush is a no-op: bulk transfers carry no client-side buffering here.
func (s *USBSink) Flush() error {
	return nil
}

// Close releases the interface claim and the device handle.
func (s *USBSink) Close() error {
	s.intf.Close()
	err := s.cfg.Close()
	if cerr := s.dev.Close(); err == nil {
		err = cerr
	}
	if cerr := s.usbCtx.Close(); err == nil {
		err = cerr
	}
	return err
}

// mapUSBError folds libusb failures into the package taxonomy while
// keeping the underlying error in the chain.
func mapUSBError(op string, err error) error {
	switch {
	case errorMentions(err, gousb.ErrorNotFound) || errorMentions(err, gousb.ErrorNoDevice):
		return fmt.Errorf("%s: %w: %w", op, ErrDeviceNotFound, err)
	case errorMentions(err, gousb.ErrorBusy) || errorMentions(err, gousb.ErrorAccess):
		return fmt.Errorf("%s: %w: %w", op, ErrDeviceBusy, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrTransfer, err)
	}
}

// mapClaimError classifies failures from the configuration-select and
// interface-claim steps. These fail because somebody else holds the
// interface or permissions are missing, so the step itself implies
// ErrDeviceBusy; the exception is the device disappearing mid-setup.
func mapClaimError(op string, err error) error {
	if errorMentions(err, gousb.ErrorNoDevice) || errorMentions(err, gousb.ErrorNotFound) {
		return fmt.Errorf("%s: %w: %w", op, ErrDeviceNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDeviceBusy, err)
}

// errorMentions reports whether err carries the given libusb code, either
// in its wrap chain or flattened into its message. gousb formats most
// intermediate failures with %v, which drops the typed value from the
// chain and leaves only its text.
func errorMentions(err error, code gousb.Error) bool {
	if errors.Is(err, code) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), code.Error())
}
