// =============================================================================
// Blind Receiving Highlighter - Main Entry Point
// =============================================================================
//
// USAGE:
//   highlighter highlight <report>  - Highlight a single report
//   highlighter process             - Highlight every report in the input directory
//   highlighter version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/receiving   : Section indexing and priority classification
//   - internal/rptparser   : Report intake
//   - internal/render      : PDF and workbook output
//   - internal/highlighter : Per-report pipeline
//   - internal/config      : YAML and environment configuration
//   - internal/logging     : Logger construction
//   - pkg/utils            : File discovery, naming, archival and summaries
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/blind-receiver-highlighter/cmd"
)

func main() {
	cmd.Execute()
}
