// Package extract implements the two-pass text extraction flow for
// uploaded documents.
//
// The standard pass sends the raw file to a text extractor (Apache Tika).
// When it yields too little text the document is almost always a scan,
// and the vision fallback renders the first pages to images and has a
// vision model transcribe them. The caller decides whether the fallback
// runs; it costs real money per page.
package extract
