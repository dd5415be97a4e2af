package ical

// RFC5545 content lines carry at most 75 octets; continuation lines lose one
// octet to the leading space.
const (
	foldLimit         = 75
	continuationLimit = foldLimit - 1
)

// FoldWrapper transforms a plain write function into one that treats each
// call as a single logical content line: the line is folded to the 75-octet
// limit, continuation segments get a leading space, and every physical line
// ends with CRLF. An empty logical line writes nothing at all. Example:
//
//	var sb strings.Builder
//	writer := FoldWrapper(sb.WriteString)
//	writer("SUMMARY:some very long text...")
//
// A fold never lands inside a multi-byte UTF-8 sequence: the break position
// backs up from the budget boundary to the nearest byte that does not
// continue a sequence. A run of continuation bytes longer than the whole
// budget cannot occur in valid UTF-8; if it does, the line splits exactly at
// the limit so folding always makes progress.
func FoldWrapper(write func(string) (int, error)) func(string) (int, error) {
	return func(line string) (int, error) {
		total := 0
		limit := foldLimit
		prefix := ""
		for line != "" {
			segment := line
			if len(segment) > limit {
				cut := limit
				for cut > 0 && isContinuationByte(line[cut]) {
					cut--
				}
				if cut == 0 {
					cut = limit
				}
				segment = line[:cut]
			}
			line = line[len(segment):]
			n, err := write(prefix + segment + "\r\n")
			total += n
			if err != nil {
				return total, err
			}
			limit = continuationLimit
			prefix = " "
		}
		return total, nil
	}
}

// Continuation bytes of a multi-byte UTF-8 sequence look like 10xxxxxx.
func isContinuationByte(b byte) bool {
	return b&0xC0 == 0x80
}
