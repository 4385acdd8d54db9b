package arb

import (
	"strings"

	"github.com/gogpu/arbconv/ir"
)

const headerMarker = "!!"

// LocateHeader finds the program header for stage and returns the offset
// just past it. Bytes before the first "!!" are skipped.
func LocateHeader(source string, stage ir.Stage) (int, error) {
	at := strings.Index(source, headerMarker)
	if at < 0 {
		return 0, &SourceError{Kind: KindStructural, Message: "Invalid program start", Offset: 0, Source: source}
	}
	header := stage.Header()
	if !strings.HasPrefix(source[at:], header) {
		return 0, &SourceError{Kind: KindStructural, Message: "Invalid program start", Offset: at, Source: source}
	}
	return at + len(header), nil
}

// DetectStage reports the stage named by the first header in source.
func DetectStage(source string) (ir.Stage, bool) {
	at := strings.Index(source, headerMarker)
	if at < 0 {
		return 0, false
	}
	for _, stage := range []ir.Stage{ir.StageVertex, ir.StageFragment} {
		if strings.HasPrefix(source[at:], stage.Header()) {
			return stage, true
		}
	}
	return 0, false
}
