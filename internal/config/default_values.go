package config

const (
	DefaultScannerIntervalMS = 400
	DefaultHistoryLimit      = 20
	DefaultHistoryKey        = "scan-history"

	DefaultBaseDir = "~/.qrscan"
	DefaultDBFile  = "qrscan.db"
	DefaultLogFile = "scanner.log"

	UIModeAuto = "auto"
	UIModeTUI  = "tui"
	UIModeLine = "line"
)
