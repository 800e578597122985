package extract

// Kind classifies the result of an extraction pass.
type Kind int

const (
	// KindSufficient means the extracted text passed its length gate and
	// can be processed further.
	KindSufficient Kind = iota + 1

	// KindNeedsFallback means the standard pass produced too little text
	// and the document is a candidate for the vision fallback.
	KindNeedsFallback

	// KindFailed means extraction failed terminally for this pass.
	KindFailed
)

// Outcome is the result of an extraction pass over a document.
type Outcome struct {
	Kind       Kind
	Text       string
	CharCount  int
	VisionUsed bool

	// Err carries the terminal failure when Kind is KindFailed.
	Err error
}

// Sufficient reports whether the pass yielded usable text.
func (o Outcome) Sufficient() bool {
	return o.Kind == KindSufficient
}
