// Package render turns forecast values into LED colors and writes them to
// the strips.
//
// Colors are defined as per-channel fractions (a Shade) and scaled by a
// brightness percentage when written:
//
//	channel = round(255 * brightness/100 * fraction)
//
// Brightness is clamped to 0..100 before scaling. Rain uses either the
// threshold gradient (green, yellow, red) or an 11 stop palette; the
// temperature strip uses a blue to red palette. Palette lookups bucket the
// value to the nearest multiple of 10, and a bucket outside the table is off.
//
// The slot showing the current hour is always drawn at full brightness.
// Depending on the recency mode, the previous slot or every earlier slot is
// drawn at brightness/divisor.
package render
