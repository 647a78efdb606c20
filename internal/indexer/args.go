package indexer

// SanitizeArgs strips any --site/-s flag and its value from the argument
// list. The site directory is authoritative configuration and is appended
// separately, so caller-supplied copies are dropped as pairs. Sanitizing an
// already-clean list returns it unchanged.
func SanitizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "--site" || args[i] == "-s" {
			i++ // skip the flag's value too
			continue
		}
		out = append(out, args[i])
	}
	return out
}
