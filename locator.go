package laborcrawl

// ContentLocator finds the authoritative judgment body within a detail
// view's HTML. It never fails: when no selector matches, it degrades to
// the whole-document text, possibly empty, and logs a warning through a
// side channel.
type ContentLocator interface {
	Locate(html string) string
}
