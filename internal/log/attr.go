package log

import "log/slog"

// NonZero builds a [slog.Attr] for key/val, or the zero Attr if val is
// the zero value of T. Logging call sites use this to omit optional
// fields instead of printing "field=0"/"field="" noise.
func NonZero[T comparable](key string, val T) slog.Attr {
	var zero T
	if val == zero {
		return slog.Attr{}
	}
	return slog.Any(key, val)
}
