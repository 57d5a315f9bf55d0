package pdfextract

import "os/exec"

// execCommand is swapped in tests to fake the pdftotext binary.
var execCommand = exec.CommandContext
