package assemble

import "github.com/golangee/geo/format"

// newTestFormatContext seeds a format context whose out-stack already
// holds classID in StreamOfElements layout, the shape a caller leaves
// behind right before invoking a method that consumes StreamOfElements.
func newTestFormatContext(classID uint16) *format.Context {
	fc := format.NewContext()
	fc.Exit(classID, format.StreamOfElements)
	return fc
}
