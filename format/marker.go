package format

import (
	"strings"

	"github.com/arloliu/omf/errs"
)

// DataMarker is the substring that terminates the header prologue.
const DataMarker = "Begin: Data"

// ParseDataMode selects the decode mode declared on a "Begin: Data" marker line.
//
// The line is split on whitespace; token 3 must be "Text" or "Binary", and a binary marker
// must carry "4" or "8" in token 4. Any other combination yields an
// *errs.UnknownDataFormatError holding tokens 3 and 4 (empty when absent).
func ParseDataMode(marker string) (DataMode, error) {
	tokens := strings.Fields(marker)
	kind, width := token(tokens, 3), token(tokens, 4)

	switch {
	case kind == "Text":
		return ModeText, nil
	case kind == "Binary" && width == "4":
		return ModeBinary4, nil
	case kind == "Binary" && width == "8":
		return ModeBinary8, nil
	default:
		return 0, &errs.UnknownDataFormatError{Kind: kind, Width: width}
	}
}

func token(tokens []string, idx int) string {
	if idx < len(tokens) {
		return tokens[idx]
	}

	return ""
}
