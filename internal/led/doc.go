// Package led is the addressable LED strip layer.
//
// A Strip is an in-memory pixel buffer in front of a Driver. Callers set
// pixels and then Flush the whole buffer in one batch; drivers never see
// partial frames. Drivers exist for WS281x strips on a Raspberry Pi (SPI or
// a DMA-capable GPIO pin, via periph.io), for a terminal rendering of the
// strip, and for an in-memory recorder used when no hardware is present.
package led
