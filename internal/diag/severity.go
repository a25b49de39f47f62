package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// коды, после которых вывод всё равно пишется
var warningCodes = map[Code]struct{}{
	LexIdentNotNFC: {},
	DrvMissingFmt:  {},
	GenFormatFail:  {},
	GenCacheFailed: {},
}

// Severity is the severity c is reported with. Warnings are the codes that
// leave the generated file usable; the *Info codes are informational.
func (c Code) Severity() Severity {
	if _, ok := warningCodes[c]; ok {
		return SevWarning
	}
	if c != UnknownCode && c%1000 == 0 {
		return SevInfo
	}
	return SevError
}
